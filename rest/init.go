package rest

import (
	"plant-irrigation-api/irrigation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Handler struct {
	svc *irrigation.Service
}

func NewHandler(svc *irrigation.Service) *Handler {
	return &Handler{svc: svc}
}

func Init(app *fiber.App, svc *irrigation.Service) {
	h := NewHandler(svc)

	SetupSwagger(app)

	app.Get("/", RootHandler)
	app.Get("/health", h.HealthHandler)

	app.Post("/boards", h.CreateBoardHandler)
	app.Get("/boards", h.ListBoardsHandler)
	app.Get("/boards/:boardId", h.GetBoardHandler)
	app.Delete("/boards/:boardId", h.DeleteBoardHandler)

	app.Put("/boards/:boardId/sensors/:field", h.PushSensorHandler)
	app.Get("/boards/:boardId/command", h.PollCommandHandler)
	app.Post("/boards/:boardId/command/stop", h.StopWateringHandler)

	app.Post("/plants", h.CreatePlantHandler)
	app.Get("/plants", h.ListPlantsHandler)
	app.Get("/plants/:plantId", h.GetPlantHandler)
	app.Delete("/plants/:plantId", h.DeletePlantHandler)

	app.Put("/plants/:plantId/board", h.BindBoardHandler)
	app.Delete("/plants/:plantId/board", h.UnbindBoardHandler)
	app.Put("/plants/:plantId/mode", h.SetModeHandler)
	app.Put("/plants/:plantId/targets", h.SetTargetsHandler)
	app.Put("/plants/:plantId/force-water", h.SetForceWaterHandler)
	app.Put("/plants/:plantId/watering-time", h.SetWateringTimeHandler)
	app.Get("/plants/:plantId/waterings", h.ListWateringsHandler)

	log.Info("REST API started")
}

func RootHandler(c *fiber.Ctx) error {
	return c.JSON(SuccessResponse{Message: "Hello World"})
}

func (h *Handler) HealthHandler(c *fiber.Ctx) error {
	if err := h.svc.Ping(c.UserContext()); err != nil {
		return ReturnError(c, err, "Health check failed")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

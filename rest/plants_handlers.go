package rest

import (
	"plant-irrigation-api/irrigation"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreatePlantHandler(c *fiber.Ctx) error {
	var req CreatePlantRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if req.PlantID == nil {
		return ReturnBadRequest(c, "plant_id is required")
	}

	if req.WateringTime <= 0 {
		return ReturnBadRequest(c, "watering_time is required and must be positive")
	}

	plantDate := ""
	if req.PlantDate != "" {
		date, err := parseFlexibleDate(req.PlantDate)
		if err != nil {
			return ReturnBadRequest(c, "Invalid plant_date format. Use ISO 8601 format (e.g., 2026-04-01 or 2026-04-01T08:00:00Z)")
		}
		plantDate = date.Format("2006-01-02")
	}

	plant, err := h.svc.CreatePlant(c.UserContext(), irrigation.Plant{
		PlantID:   *req.PlantID,
		Board:     req.Board,
		Name:      req.Name,
		PlantDate: plantDate,
		Mode:      req.Mode,
		Targets: irrigation.Targets{
			Moisture:    req.TargetedMoisture,
			Temperature: req.TargetedTemperature,
			Light:       req.TargetedLight,
		},
		ForceWater:   req.ForceWater,
		WateringTime: req.WateringTime,
	})
	if err != nil {
		return ReturnError(c, err, "Failed to create plant")
	}

	return c.Status(fiber.StatusCreated).JSON(toPlantDetail(*plant))
}

func (h *Handler) ListPlantsHandler(c *fiber.Ctx) error {
	plants, err := h.svc.ListPlants(c.UserContext())
	if err != nil {
		return ReturnError(c, err, "Failed to retrieve plants")
	}

	details := make([]PlantDetail, len(plants))
	for i, plant := range plants {
		details[i] = toPlantDetail(plant)
	}

	return c.JSON(PlantsListResponse{Data: details})
}

func (h *Handler) GetPlantHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	plant, err := h.svc.GetPlant(c.UserContext(), plantID)
	if err != nil {
		return ReturnError(c, err, "Failed to retrieve plant")
	}

	return c.JSON(toPlantDetail(*plant))
}

func (h *Handler) DeletePlantHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	if err := h.svc.DeletePlant(c.UserContext(), plantID); err != nil {
		return ReturnError(c, err, "Failed to delete plant")
	}

	return c.JSON(SuccessResponse{Message: "Plant deleted"})
}

func (h *Handler) BindBoardHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	var req BindRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if req.BoardID == nil {
		return ReturnBadRequest(c, "board_id is required")
	}

	if err := h.svc.Bind(c.UserContext(), plantID, *req.BoardID); err != nil {
		return ReturnError(c, err, "Failed to bind board")
	}

	return c.JSON(SuccessResponse{Message: "Board bound to plant"})
}

func (h *Handler) UnbindBoardHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	if err := h.svc.Unbind(c.UserContext(), plantID); err != nil {
		return ReturnError(c, err, "Failed to unbind board")
	}

	return c.JSON(SuccessResponse{Message: "Board unbound from plant"})
}

func (h *Handler) SetModeHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	var req ModeRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if req.Mode == "" {
		return ReturnBadRequest(c, "mode is required")
	}

	if err := h.svc.SetMode(c.UserContext(), plantID, req.Mode); err != nil {
		return ReturnError(c, err, "Failed to update mode")
	}

	return c.JSON(SuccessResponse{Message: "Mode updated"})
}

func (h *Handler) SetTargetsHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	var req TargetsRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	targets := irrigation.Targets{
		Moisture:    req.TargetedMoisture,
		Temperature: req.TargetedTemperature,
		Light:       req.TargetedLight,
	}
	if err := h.svc.SetTargets(c.UserContext(), plantID, targets); err != nil {
		return ReturnError(c, err, "Failed to update targets")
	}

	return c.JSON(SuccessResponse{Message: "Targets updated"})
}

func (h *Handler) SetForceWaterHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	var req ForceWaterRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if req.ForceWater == "" {
		return ReturnBadRequest(c, "force_water is required")
	}

	if err := h.svc.SetForceWater(c.UserContext(), plantID, req.ForceWater); err != nil {
		return ReturnError(c, err, "Failed to update force_water")
	}

	return c.JSON(SuccessResponse{Message: "Force water updated"})
}

func (h *Handler) SetWateringTimeHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	var req WateringTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if err := h.svc.SetWateringTime(c.UserContext(), plantID, req.WateringTime); err != nil {
		return ReturnError(c, err, "Failed to update watering_time")
	}

	return c.JSON(SuccessResponse{Message: "Watering time updated"})
}

func (h *Handler) ListWateringsHandler(c *fiber.Ctx) error {
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	limit := c.QueryInt("limit", irrigation.DefaultWateringsLimit)

	events, err := h.svc.Waterings(c.UserContext(), plantID, limit)
	if err != nil {
		return ReturnError(c, err, "Failed to retrieve waterings")
	}

	details := make([]WateringDetail, len(events))
	for i, event := range events {
		details[i] = toWateringDetail(event)
	}

	return c.JSON(WateringsListResponse{Data: details})
}

package rest

import (
	"plant-irrigation-api/irrigation"

	"github.com/gofiber/fiber/v2"
)

const (
	waterStatusActive   = "active"
	waterStatusInactive = "inactive"
)

// PushSensorHandler stores one reading pushed by a board for its bound plant.
func (h *Handler) PushSensorHandler(c *fiber.Ctx) error {
	boardID, err := paramID(c, "boardId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	field, err := irrigation.ParseReadingField(c.Params("field"))
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	var req SensorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return ReturnBodyError(c, err)
	}

	if req.Value == nil {
		return ReturnBadRequest(c, "value is required")
	}

	if err := h.svc.Ingest(c.UserContext(), boardID, field, *req.Value); err != nil {
		return ReturnError(c, err, "Failed to store sensor value")
	}

	return c.JSON(SuccessResponse{Message: "Sensor value stored"})
}

func (h *Handler) PollCommandHandler(c *fiber.Ctx) error {
	boardID, err := paramID(c, "boardId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	cmd, err := h.svc.Poll(c.UserContext(), boardID)
	if err != nil {
		return ReturnError(c, err, "Failed to compute watering command")
	}

	response := PollResponse{
		WaterStatus: waterStatusInactive,
		Reason:      string(cmd.Reason),
	}
	if cmd.Run {
		response.WaterStatus = waterStatusActive
		response.DurationMS = cmd.DurationMS
	}

	return c.JSON(response)
}

// StopWateringHandler is called by a board once it has run the pump for the
// commanded duration.
func (h *Handler) StopWateringHandler(c *fiber.Ctx) error {
	boardID, err := paramID(c, "boardId")
	if err != nil {
		return ReturnBadRequest(c, err.Error())
	}

	event, err := h.svc.Complete(c.UserContext(), boardID)
	if err != nil {
		return ReturnError(c, err, "Failed to stop watering")
	}

	response := StopResponse{
		Message:  "Watering stopped",
		Watering: toWateringDetail(*event),
	}

	return c.JSON(response)
}

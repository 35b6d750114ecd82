package rest

import (
	"errors"
	"strconv"
	"time"

	"plant-irrigation-api/irrigation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func ReturnBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

func ReturnNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": message,
	})
}

func ReturnConflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": message,
	})
}

func ReturnUnavailable(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderRetryAfter, "1")
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": message,
	})
}

func ReturnInternalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

// ReturnError translates a service error into its HTTP status. fallback is
// the message shown for errors that are not part of the irrigation taxonomy.
func ReturnError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, irrigation.ErrValidation):
		return ReturnBadRequest(c, err.Error())
	case errors.Is(err, irrigation.ErrNotFound):
		return ReturnNotFound(c, err.Error())
	case errors.Is(err, irrigation.ErrConflict):
		return ReturnConflict(c, err.Error())
	case errors.Is(err, irrigation.ErrUnavailable):
		log.Warnf("%s %s: %v", c.Method(), c.Path(), err)
		return ReturnUnavailable(c, "Record store unavailable, retry later")
	}

	log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	return ReturnInternalError(c, fallback)
}

// ReturnBodyError answers a BodyParser failure, keeping the message of enum
// values rejected while decoding.
func ReturnBodyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, irrigation.ErrValidation) {
		return ReturnBadRequest(c, err.Error())
	}
	return ReturnBadRequest(c, "Invalid request body")
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return id, nil
}

// parseFlexibleDate accepts RFC 3339 timestamps and plain dates.
func parseFlexibleDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02", dateStr)
	if err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, err
}

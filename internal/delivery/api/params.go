package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"questjournal/internal/apperr"
)

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnprocessableEntity, name+" must be an integer")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return apperr.NewInvalidArgument("request body is required")
	}
	if err := c.BodyParser(out); err != nil {
		return apperr.Wrap(apperr.CodeInvalidArgument, "invalid payload", err)
	}
	return nil
}

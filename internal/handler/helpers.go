package handler

import (
	"errors"
	"strconv"

	"github.com/syafrud/Kasir-new-sub000/internal/model"
	"github.com/syafrud/Kasir-new-sub000/internal/service"
	"github.com/syafrud/Kasir-new-sub000/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// actorFrom reads the identity set by RequireAuth
func actorFrom(c *fiber.Ctx) service.Actor {
	actor := service.SystemActor
	if id, ok := c.Locals("user_id").(uint); ok {
		actor.UserID = id
	}
	if username, ok := c.Locals("username").(string); ok {
		actor.Username = username
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	return actor
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func paginationFrom(c *fiber.Ctx) model.Pagination {
	return model.Pagination{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", model.DefaultPageLimit),
		Search: c.Query("search"),
	}
}

func paginated(c *fiber.Ctx, data interface{}, meta model.PageMeta) error {
	return c.JSON(fiber.Map{"data": data, "meta": meta})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// statusFor maps service sentinel errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrOperatorRequired),
		errors.Is(err, service.ErrInvalidEventWindow),
		errors.Is(err, service.ErrDuplicateEventProduct),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrCannotDeleteSelf):
		return fiber.StatusBadRequest

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoleNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, service.ErrBarcodeTaken),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrUsernameTaken):
		return fiber.StatusConflict

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrPaymentInsufficient),
		errors.Is(err, service.ErrCustomerInactive),
		errors.Is(err, service.ErrOperatorInactive),
		errors.Is(err, service.ErrInvalidEventProduct):
		return fiber.StatusUnprocessableEntity

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionReplaced):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// respondError writes err as {"error": msg}; unexpected errors are logged and hidden
func respondError(c *fiber.Ctx, module, funcName string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.LogError(module, funcName, c.Method()+" "+c.Path(), nil, err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

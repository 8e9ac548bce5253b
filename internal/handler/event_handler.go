package handler

import (
	"time"

	"github.com/syafrud/Kasir-new-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(s service.EventService) *EventHandler {
	return &EventHandler{service: s}
}

func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	events, meta, err := h.service.List(c.UserContext(), paginationFrom(c))
	if err != nil {
		return respondError(c, "event", "GetEvents", err)
	}
	return paginated(c, events, meta)
}

// GetActiveEvents lists events running now, or at ?at= (RFC3339)
func (h *EventHandler) GetActiveEvents(c *fiber.Ctx) error {
	at := time.Now()
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid 'at', use RFC3339")
		}
		at = parsed
	}
	events, err := h.service.ListActive(c.UserContext(), at)
	if err != nil {
		return respondError(c, "event", "GetActiveEvents", err)
	}
	return c.JSON(fiber.Map{"data": events})
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	event, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, "event", "GetEvent", err)
	}
	return c.JSON(event)
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req service.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	event, err := h.service.Create(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return respondError(c, "event", "CreateEvent", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Event created", "data": event})
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	var req service.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	event, err := h.service.Update(c.UserContext(), id, &req, actorFrom(c))
	if err != nil {
		return respondError(c, "event", "UpdateEvent", err)
	}
	return c.JSON(fiber.Map{"message": "Event updated", "data": event})
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}
	if err := h.service.Delete(c.UserContext(), id, actorFrom(c)); err != nil {
		return respondError(c, "event", "DeleteEvent", err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}

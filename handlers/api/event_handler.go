package api

import (
	"time"

	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// EventHandler etkinlik CRUD uçları.
type EventHandler struct {
	service services.IEventService
}

// NewEventHandler yeni bir EventHandler örneği oluşturur.
func NewEventHandler(service services.IEventService) *EventHandler {
	return &EventHandler{service: service}
}

type eventRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" validate:"max=5000"`
	StartsAt    int64  `json:"startsAt" validate:"required,gt=0"`
	EndsAt      int64  `json:"endsAt" validate:"required,gt=0"`
	Location    string `json:"location" validate:"max=255"`
	Capacity    int    `json:"capacity" validate:"required,gt=0,lte=10000"`
}

func (r eventRequest) toInput() services.EventInput {
	return services.EventInput{
		Title:       r.Title,
		Description: r.Description,
		StartsAt:    msToTime(r.StartsAt),
		EndsAt:      msToTime(r.EndsAt),
		Location:    r.Location,
		Capacity:    r.Capacity,
	}
}

type eventResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartsAt    int64  `json:"startsAt"`
	EndsAt      int64  `json:"endsAt"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	OrganizerID uint   `json:"organizerId"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor"`
	CanEdit     bool   `json:"canEdit"`
	CanDelete   bool   `json:"canDelete"`
}

func toEventResponse(e models.Event, now time.Time) eventResponse {
	status := e.Status(now)
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    timeToMs(e.StartsAt),
		EndsAt:      timeToMs(e.EndsAt),
		Location:    e.Location,
		Capacity:    e.Capacity,
		OrganizerID: e.OrganizerID,
		Status:      string(status),
		StatusLabel: status.Label(),
		StatusColor: status.ColorClass(),
		CanEdit:     models.CanEditStatus(status),
		CanDelete:   models.CanDeleteStatus(status),
	}
}

// CreateEvent (POST /api/events)
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Lütfen formu kontrol edin: "+err.Error())
	}

	event, err := h.service.CreateEvent(c.UserContext(), actorID, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, toEventResponse(*event, time.Now().UTC()))
}

// GetEvent (GET /api/events/:id)
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	event, err := h.service.GetEventByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, toEventResponse(*event, time.Now().UTC()))
}

// ListEventsByOrganizer (GET /api/events/organizer/:organizerId)
func (h *EventHandler) ListEventsByOrganizer(c *fiber.Ctx) error {
	organizerID, err := paramID(c, "organizerId")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("starts_at")
	}

	result, err := h.service.GetEventsByOrganizer(c.UserContext(), organizerID, params)
	if err != nil {
		return respondServiceError(c, err)
	}

	now := time.Now().UTC()
	events, _ := result.Data.([]models.Event)
	result.Data = lo.Map(events, func(e models.Event, _ int) eventResponse {
		return toEventResponse(e, now)
	})
	return c.Status(fiber.StatusOK).JSON(result)
}

// UpdateEvent (PUT /api/events/:id)
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Lütfen formu kontrol edin: "+err.Error())
	}

	event, err := h.service.UpdateEvent(c.UserContext(), actorID, id, req.toInput())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, toEventResponse(*event, time.Now().UTC()))
}

// DeleteEvent (DELETE /api/events/:id)
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	if err := h.service.DeleteEvent(c.UserContext(), actorID, id); err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"message": "Etkinlik silindi."})
}

package api

import (
	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// InvitationHandler davet yaşam döngüsü uçları.
type InvitationHandler struct {
	service services.IInvitationService
}

// NewInvitationHandler yeni bir InvitationHandler örneği oluşturur.
func NewInvitationHandler(service services.IInvitationService) *InvitationHandler {
	return &InvitationHandler{service: service}
}

type inviteRequest struct {
	EventID   uint   `json:"eventId" validate:"required,gt=0"`
	InviteeID uint   `json:"inviteeId" validate:"required,gt=0"`
	Message   string `json:"message" validate:"max=500"`
}

type selfApplyRequest struct {
	EventID uint   `json:"eventId" validate:"required,gt=0"`
	Message string `json:"message" validate:"max=500"`
}

type invitationResponse struct {
	ID                uint   `json:"id"`
	EventID           uint   `json:"eventId"`
	InviteeID         uint   `json:"inviteeId"`
	State             string `json:"state"`
	StateLabel        string `json:"stateLabel"`
	StateColor        string `json:"stateColor"`
	IsSelfApplication bool   `json:"isSelfApplication"`
	InvitedAt         int64  `json:"invitedAt"`
	RespondedAt       *int64 `json:"respondedAt"`
	Message           string `json:"message"`
	// ActionInProgress bu davet için bir geçiş isteği sürüyorsa true;
	// arayüz ilgili butonları devre dışı bırakır.
	ActionInProgress bool `json:"actionInProgress"`
}

func (h *InvitationHandler) toInvitationResponse(inv models.EventInvitation) invitationResponse {
	return invitationResponse{
		ID:                inv.ID,
		EventID:           inv.EventID,
		InviteeID:         inv.InviteeID,
		State:             string(inv.State),
		StateLabel:        inv.State.Label(),
		StateColor:        inv.State.ColorClass(),
		IsSelfApplication: inv.IsSelfApplication,
		InvitedAt:         timeToMs(inv.InvitedAt),
		RespondedAt:       timePtrToMs(inv.RespondedAt),
		Message:           inv.Message,
		ActionInProgress:  h.service.IsTransitionInFlight(inv.ID),
	}
}

// Invite (POST /api/event-invitations/invite)
func (h *InvitationHandler) Invite(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}

	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Lütfen formu kontrol edin: "+err.Error())
	}

	invitation, err := h.service.InviteUser(c.UserContext(), actorID, req.EventID, req.InviteeID, req.Message)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, h.toInvitationResponse(*invitation))
}

// SelfApply (POST /api/event-invitations/self-apply)
func (h *InvitationHandler) SelfApply(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}

	var req selfApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Lütfen formu kontrol edin: "+err.Error())
	}

	invitation, err := h.service.SelfApply(c.UserContext(), actorID, req.EventID, req.Message)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, h.toInvitationResponse(*invitation))
}

// transition dört geçiş ucunun ortak gövdesi.
func (h *InvitationHandler) transition(c *fiber.Ctx, apply func(actorID, id uint) error) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	if err := apply(actorID, id); err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"message": "İşlem tamamlandı."})
}

// Accept (PUT /api/event-invitations/:id/accept)
func (h *InvitationHandler) Accept(c *fiber.Ctx) error {
	return h.transition(c, func(actorID, id uint) error {
		return h.service.Accept(c.UserContext(), actorID, id)
	})
}

// Reject (PUT /api/event-invitations/:id/reject)
func (h *InvitationHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, func(actorID, id uint) error {
		return h.service.Reject(c.UserContext(), actorID, id)
	})
}

// Approve (PUT /api/event-invitations/:id/approve)
func (h *InvitationHandler) Approve(c *fiber.Ctx) error {
	return h.transition(c, func(actorID, id uint) error {
		return h.service.Approve(c.UserContext(), actorID, id)
	})
}

// RejectByOrganizer (PUT /api/event-invitations/:id/reject-by-organizer)
func (h *InvitationHandler) RejectByOrganizer(c *fiber.Ctx) error {
	return h.transition(c, func(actorID, id uint) error {
		return h.service.RejectByOrganizer(c.UserContext(), actorID, id)
	})
}

// ListByEvent (GET /api/event-invitations/event/:eventId)
// Listeyle birlikte pano için gruplanmış görünümü de döner.
func (h *InvitationHandler) ListByEvent(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	invitations, err := h.service.GetInvitationsForEvent(c.UserContext(), actorID, eventID)
	if err != nil {
		return respondServiceError(c, err)
	}

	groups := services.GroupInvitations(invitations)
	return respondData(c, fiber.StatusOK, fiber.Map{
		"invitations": h.toInvitationResponses(invitations),
		"groups": fiber.Map{
			"pendingApproval": h.toInvitationResponses(groups.PendingApproval),
			"confirmed":       h.toInvitationResponses(groups.Confirmed),
			"other":           h.toInvitationResponses(groups.Other),
		},
	})
}

// ListByUser (GET /api/event-invitations/user/:userId)
func (h *InvitationHandler) ListByUser(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}
	userID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}

	invitations, err := h.service.GetInvitationsForInvitee(c.UserContext(), actorID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, h.toInvitationResponses(invitations))
}

func (h *InvitationHandler) toInvitationResponses(invitations []models.EventInvitation) []invitationResponse {
	return lo.Map(invitations, func(inv models.EventInvitation, _ int) invitationResponse {
		return h.toInvitationResponse(inv)
	})
}

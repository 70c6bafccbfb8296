package api

import (
	"etkinlik.link/middlewares"
	"etkinlik.link/models"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// OrganizerHandler organizatör profili uçları.
type OrganizerHandler struct {
	service services.IOrganizerService
}

// NewOrganizerHandler yeni bir OrganizerHandler örneği oluşturur.
func NewOrganizerHandler(service services.IOrganizerService) *OrganizerHandler {
	return &OrganizerHandler{service: service}
}

type organizerRequest struct {
	CompanyName     string  `json:"companyName" validate:"required,min=2,max=150"`
	Description     string  `json:"description" validate:"max=5000"`
	Phone           string  `json:"phone" validate:"required,max=30"`
	Address         string  `json:"address" validate:"max=255"`
	PricePerEvent   float64 `json:"pricePerEvent" validate:"gte=0"`
	YearsExperience int     `json:"yearsExperience" validate:"gte=0"`
	Specialty       string  `json:"specialty" validate:"max=100"`
}

type organizerResponse struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"userId"`
	CompanyName     string  `json:"companyName"`
	Description     string  `json:"description"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	PricePerEvent   float64 `json:"pricePerEvent"`
	YearsExperience int     `json:"yearsExperience"`
	Specialty       string  `json:"specialty"`
	Verified        bool    `json:"verified"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"reviewCount"`
}

func toOrganizerResponse(p models.OrganizerProfile) organizerResponse {
	return organizerResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		Description:     p.Description,
		Phone:           p.Phone,
		Address:         p.Address,
		PricePerEvent:   p.PricePerEvent,
		YearsExperience: p.YearsExperience,
		Specialty:       p.Specialty,
		Verified:        p.Verified,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
	}
}

// CreateProfile (POST /api/organizers)
func (h *OrganizerHandler) CreateProfile(c *fiber.Ctx) error {
	actorID, ok := middlewares.CurrentUserID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Oturum bulunamadı.")
	}

	var req organizerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Lütfen formu kontrol edin: "+err.Error())
	}

	profile, err := h.service.CreateProfile(c.UserContext(), actorID, services.OrganizerInput{
		CompanyName:     req.CompanyName,
		Description:     req.Description,
		Phone:           req.Phone,
		Address:         req.Address,
		PricePerEvent:   req.PricePerEvent,
		YearsExperience: req.YearsExperience,
		Specialty:       req.Specialty,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, toOrganizerResponse(*profile))
}

// ListProfiles (GET /api/organizers)
func (h *OrganizerHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.GetAllProfiles(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, lo.Map(profiles, func(p models.OrganizerProfile, _ int) organizerResponse {
		return toOrganizerResponse(p)
	}))
}

// GetProfile (GET /api/organizers/:id)
func (h *OrganizerHandler) GetProfile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}
	profile, err := h.service.GetProfileByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, toOrganizerResponse(*profile))
}

// GetProfileByUser (GET /api/organizers/user/:userId)
func (h *OrganizerHandler) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}
	profile, err := h.service.GetProfileByUserID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, toOrganizerResponse(*profile))
}

// GetStats (GET /api/organizers/:id/stats)
func (h *OrganizerHandler) GetStats(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz ID.")
	}
	stats, err := h.service.GetStats(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}

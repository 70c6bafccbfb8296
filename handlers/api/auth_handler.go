package api

import (
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler kayıt/giriş uçları.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler(service services.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      int    `json:"role"`
	RoleLabel string `json:"roleLabel"`
}

type authResponse struct {
	Token     string       `json:"token"`
	User      userResponse `json:"user"`
	ExpiresAt int64        `json:"expiresAt"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      int(u.Role),
		RoleLabel: u.Role.Label(),
	}
}

func toAuthResponse(result *services.AuthResult) authResponse {
	return authResponse{
		Token:     result.Token,
		User:      toUserResponse(result.User),
		ExpiresAt: timeToMs(result.ExpiresAt),
	}
}

// Register (POST /api/auth/register)
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Lütfen formu kontrol edin: "+err.Error())
	}

	result, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, toAuthResponse(result))
}

// Login (POST /api/auth/login)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Geçersiz istek gövdesi.")
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "E-posta ve şifre zorunludur.")
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		// Başarısız girişler warn seviyesinde izlenir.
		configslog.Log.Warn("Başarısız giriş denemesi", zap.String("email", req.Email))
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, toAuthResponse(result))
}

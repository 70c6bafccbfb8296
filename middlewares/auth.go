package middlewares

import (
	"strings"

	"etkinlik.link/configs"
	"etkinlik.link/models"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

const (
	localsUserIDKey   = "userID"
	localsUserRoleKey = "userRole"
)

// AuthMiddleware Bearer token'ı doğrular ve kimliği locals'a yazar.
func AuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Oturum bulunamadı."})
	}

	claims, err := services.ParseToken(configs.Get().JWTSecret, strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Geçersiz veya süresi dolmuş oturum."})
	}

	c.Locals(localsUserIDKey, claims.UserID)
	c.Locals(localsUserRoleKey, claims.Role)
	return c.Next()
}

// RequireAdmin yalnızca yönetici rolüne izin verir. AuthMiddleware'den
// sonra kullanılmalıdır.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := CurrentUserRole(c)
		if !ok || role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu işlem için yetkiniz yok."})
		}
		return c.Next()
	}
}

// CurrentUserID locals'taki kimliği döndürür.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localsUserIDKey).(uint)
	return id, ok && id != 0
}

// CurrentUserRole locals'taki rolü döndürür.
func CurrentUserRole(c *fiber.Ctx) (models.UserRole, bool) {
	role, ok := c.Locals(localsUserRoleKey).(models.UserRole)
	return role, ok
}

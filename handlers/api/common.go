package api

import (
	"errors"
	"time"

	"etkinlik.link/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate istek gövdelerinin struct tag validasyonu için tek örnek.
var validate = validator.New()

// respondData başarılı yanıt zarfı: {"data": ...}
func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"data": data})
}

// respondError hata zarfı: {"error": "..."}
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError servis hatasını HTTP koduna çevirip döner.
func respondServiceError(c *fiber.Ctx, err error) error {
	return respondError(c, statusForError(err), err.Error())
}

// statusForError servis hata taksonomisini HTTP durum kodlarına eşler.
// Durum geçişi çakışmaları 409 döner ki arayüz listeyi tazeleyebilsin.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvitationNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrOrganizerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvitationForbidden),
		errors.Is(err, services.ErrEventForbidden),
		errors.Is(err, services.ErrOrganizerForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvitationStateInvalid),
		errors.Is(err, services.ErrInvitationAlreadyExists),
		errors.Is(err, services.ErrOrganizerAlreadyExists),
		errors.Is(err, services.ErrEventCapacityFull):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvInvalidInput),
		errors.Is(err, services.ErrInvitationEventClosed),
		errors.Is(err, services.ErrInvitationSelfInvite),
		errors.Is(err, services.ErrEventInvalidInput),
		errors.Is(err, services.ErrEventTitleTooShort),
		errors.Is(err, services.ErrEventCapacityInvalid),
		errors.Is(err, services.ErrEventDatesInvalid),
		errors.Is(err, services.ErrEventStartInPast),
		errors.Is(err, services.ErrEventNotEditable),
		errors.Is(err, services.ErrEventNotDeletable),
		errors.Is(err, services.ErrOrganizerInvalidInput),
		errors.Is(err, services.ErrAuthInvalidInput),
		errors.Is(err, services.ErrAuthInvalidEmail),
		errors.Is(err, services.ErrAuthWeakPassword):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrAuthInvalidCredentials),
		errors.Is(err, services.ErrAuthInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAuthEmailTaken):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// Zaman değerleri API sınırını epoch milisaniye olarak geçer.
// İç katmanlar her yerde time.Time kullanır; dönüşüm yalnızca burada yapılır.

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func timeToMs(t time.Time) int64 {
	return t.UnixMilli()
}

func timePtrToMs(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// paramID path parametresini pozitif uint'e çevirir.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errors.New("geçersiz ID")
	}
	return uint(id), nil
}

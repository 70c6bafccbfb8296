package routes

import (
	"etkinlik.link/handlers/api"
	"etkinlik.link/middlewares"
	"etkinlik.link/services"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes /api altındaki JSON uçlarını tanımlar.
// Kayıt/giriş ve organizatör vitrin uçları herkese açık,
// geri kalan her şey AuthMiddleware arkasındadır.
func registerAPIRoutes(app *fiber.App) {
	// Handler instance'larını başta oluştur
	authHandler := api.NewAuthHandler(services.NewAuthService())
	eventHandler := api.NewEventHandler(services.NewEventService())
	invitationHandler := api.NewInvitationHandler(services.NewInvitationService())
	organizerHandler := api.NewOrganizerHandler(services.NewOrganizerService())

	apiGroup := app.Group("/api")

	// --- Kimlik Doğrulama ---
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register) // POST /api/auth/register
	authGroup.Post("/login", authHandler.Login)       // POST /api/auth/login

	// --- Organizatör Vitrini (herkese açık okuma) ---
	organizerGroup := apiGroup.Group("/organizers")
	organizerGroup.Get("/", organizerHandler.ListProfiles)              // GET /api/organizers
	organizerGroup.Get("/user/:userId", organizerHandler.GetProfileByUser) // GET /api/organizers/user/{userId}
	organizerGroup.Get("/:id/stats", organizerHandler.GetStats)         // GET /api/organizers/{id}/stats
	organizerGroup.Get("/:id", organizerHandler.GetProfile)             // GET /api/organizers/{id}
	organizerGroup.Post("/", middlewares.AuthMiddleware, organizerHandler.CreateProfile)

	// --- Etkinlikler ---
	eventGroup := apiGroup.Group("/events")
	eventGroup.Get("/organizer/:organizerId", eventHandler.ListEventsByOrganizer) // GET /api/events/organizer/{id}
	eventGroup.Get("/:id", eventHandler.GetEvent)                                 // GET /api/events/{id}

	eventWrite := eventGroup.Group("")
	eventWrite.Use(middlewares.AuthMiddleware)
	eventWrite.Post("/", eventHandler.CreateEvent)      // POST /api/events
	eventWrite.Put("/:id", eventHandler.UpdateEvent)    // PUT /api/events/{id}
	eventWrite.Delete("/:id", eventHandler.DeleteEvent) // DELETE /api/events/{id}

	// --- Davetler ---
	// Tüm davet uçları oturum gerektirir.
	invitationGroup := apiGroup.Group("/event-invitations")
	invitationGroup.Use(middlewares.AuthMiddleware)
	invitationGroup.Post("/invite", invitationHandler.Invite)         // POST /api/event-invitations/invite
	invitationGroup.Post("/self-apply", invitationHandler.SelfApply)  // POST /api/event-invitations/self-apply
	invitationGroup.Put("/:id/accept", invitationHandler.Accept)      // PUT /api/event-invitations/{id}/accept
	invitationGroup.Put("/:id/reject", invitationHandler.Reject)      // PUT /api/event-invitations/{id}/reject
	invitationGroup.Put("/:id/approve", invitationHandler.Approve)    // PUT /api/event-invitations/{id}/approve
	invitationGroup.Put("/:id/reject-by-organizer", invitationHandler.RejectByOrganizer)
	invitationGroup.Get("/event/:eventId", invitationHandler.ListByEvent) // GET /api/event-invitations/event/{eventId}
	invitationGroup.Get("/user/:userId", invitationHandler.ListByUser)    // GET /api/event-invitations/user/{userId}
}

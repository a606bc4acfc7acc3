package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/BoardBridge/internal/domain/board"
	"github.com/Strob0t/BoardBridge/internal/middleware"
)

// MountRoutes registers all routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers, webhookSecret string) {
	r.Get("/health", h.Health)

	// Form calls from the apps framework.
	r.Route("/api/v1/subscriptions", func(r chi.Router) {
		r.Post("/add", h.AddSubscription)
		r.Post("/remove", h.RemoveSubscription)
		r.Post("/list", h.ListSubscriptions)
	})

	// Trello callback endpoint. HEAD/GET answer the creation probe; POST
	// carries action deliveries and is guarded by the shared secret.
	r.Route(board.IncomingWebhookPath, func(r chi.Router) {
		r.Head("/", h.WebhookProbe)
		r.Get("/", h.WebhookProbe)
		r.With(middleware.WebhookSecret(webhookSecret, board.ParamSecret)).
			Post("/", h.WebhookDelivery)
	})
}

package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Strob0t/BoardBridge/internal/domain/board"
	"github.com/Strob0t/BoardBridge/internal/domain/call"
	"github.com/Strob0t/BoardBridge/internal/i18n"
	"github.com/Strob0t/BoardBridge/internal/service"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Handlers holds service dependencies for HTTP handlers.
type Handlers struct {
	subscriptions *service.SubscriptionService
	notifications *service.NotificationService
	i18n          *i18n.Bundle
}

// NewHandlers creates the handler set.
func NewHandlers(subscriptions *service.SubscriptionService, notifications *service.NotificationService, bundle *i18n.Bundle) *Handlers {
	return &Handlers{
		subscriptions: subscriptions,
		notifications: notifications,
		i18n:          bundle,
	}
}

// AddSubscription handles the add-subscription form call.
func (h *Handlers) AddSubscription(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[call.Request](w, r, maxRequestBodySize)
	if !ok {
		return
	}
	loc := h.i18n.ForLocale(req.Context.Locale)
	if err := h.subscriptions.AddSubscription(r.Context(), &req, loc); err != nil {
		writeCallError(w, err)
		return
	}
	writeCallOK(w, "")
}

// RemoveSubscription handles the remove-subscription form call.
func (h *Handlers) RemoveSubscription(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[call.Request](w, r, maxRequestBodySize)
	if !ok {
		return
	}
	loc := h.i18n.ForLocale(req.Context.Locale)
	if err := h.subscriptions.RemoveSubscription(r.Context(), &req, loc); err != nil {
		writeCallError(w, err)
		return
	}
	writeCallOK(w, "")
}

// ListSubscriptions handles the list-subscriptions form call.
func (h *Handlers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[call.Request](w, r, maxRequestBodySize)
	if !ok {
		return
	}
	loc := h.i18n.ForLocale(req.Context.Locale)
	text, err := h.subscriptions.ListSubscriptions(r.Context(), &req, loc)
	if err != nil {
		writeCallError(w, err)
		return
	}
	writeCallOK(w, text)
}

// WebhookProbe answers Trello's HEAD/GET reachability check made when a
// webhook is created.
func (h *Handlers) WebhookProbe(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// WebhookDelivery handles an incoming Trello action delivery. The secret has
// already been verified by middleware.
func (h *Handlers) WebhookDelivery(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get(board.ParamChannelID)
	if channelID == "" {
		writeError(w, http.StatusBadRequest, "missing channelId")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	loc := h.i18n.ForLocale(r.URL.Query().Get("locale"))
	err = h.notifications.HandleDelivery(r.Context(), body, channelID, loc)
	switch {
	case err == nil, errors.Is(err, service.ErrDuplicateDelivery):
		w.WriteHeader(http.StatusOK)
	default:
		slog.Warn("webhook delivery failed", "channel_id", channelID, "error", err)
		// Trello disables webhooks that keep failing; acknowledge and move on.
		w.WriteHeader(http.StatusOK)
	}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

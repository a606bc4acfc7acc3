package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	bbotel "github.com/Strob0t/BoardBridge/internal/adapter/otel"
	"github.com/Strob0t/BoardBridge/internal/i18n"
	"github.com/Strob0t/BoardBridge/internal/port/cache"
)

// ChannelPoster writes a message into a channel.
type ChannelPoster interface {
	Post(ctx context.Context, channelID, message string) error
}

// Delivery is one incoming Trello webhook delivery, reduced to the fields
// the notification needs.
type Delivery struct {
	Action struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Card struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"card"`
			Board struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"board"`
		} `json:"data"`
	} `json:"action"`
}

// ErrDuplicateDelivery marks a redelivered action already handled within the
// dedup window.
var ErrDuplicateDelivery = errors.New("duplicate delivery")

// NotificationService turns incoming webhook deliveries into channel posts.
// Trello redelivers on slow responses, so action ids are deduplicated for a
// short window before any post is made.
type NotificationService struct {
	poster   ChannelPoster
	seen     cache.Cache
	dedupTTL time.Duration
}

// NewNotificationService creates a NotificationService. dedupTTL bounds how
// long a handled action id blocks redeliveries.
func NewNotificationService(poster ChannelPoster, seen cache.Cache, dedupTTL time.Duration) *NotificationService {
	return &NotificationService{poster: poster, seen: seen, dedupTTL: dedupTTL}
}

// HandleDelivery parses a webhook delivery body and posts a localized
// notification into channelID. Returns ErrDuplicateDelivery for an action id
// seen within the dedup window.
func (s *NotificationService) HandleDelivery(ctx context.Context, body []byte, channelID string, loc *i18n.Localizer) error {
	var d Delivery
	if err := json.Unmarshal(body, &d); err != nil {
		return fmt.Errorf("parse delivery: %w", err)
	}
	if d.Action.ID == "" {
		return errors.New("delivery has no action id")
	}

	ctx, span := bbotel.StartDeliverySpan(ctx, d.Action.ID, channelID)
	defer span.End()

	if _, ok, err := s.seen.Get(ctx, d.Action.ID); err != nil {
		return fmt.Errorf("dedup lookup: %w", err)
	} else if ok {
		slog.Debug("delivery deduplicated", "action_id", d.Action.ID)
		return ErrDuplicateDelivery
	}
	if err := s.seen.Set(ctx, d.Action.ID, nil, s.dedupTTL); err != nil {
		return fmt.Errorf("dedup store: %w", err)
	}

	message := loc.Text(i18n.KeyCardNotification, d.Action.Data.Card.Name, d.Action.Data.Board.Name)
	if err := s.poster.Post(ctx, channelID, message); err != nil {
		return fmt.Errorf("post notification: %w", err)
	}

	slog.Info("notification posted",
		"action_id", d.Action.ID,
		"action_type", d.Action.Type,
		"channel_id", channelID,
	)
	return nil
}

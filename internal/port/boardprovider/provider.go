// Package boardprovider defines the port interface for the external
// board-management service (Trello). Every operation is a single
// request/response exchange; classification of failures is left to callers.
package boardprovider

import (
	"context"

	"github.com/Strob0t/BoardBridge/internal/domain/board"
)

// Provider is the port interface for board and webhook-subscription
// operations. Implementations derive authentication per call from the
// credentials they were constructed with.
type Provider interface {
	// Organization resolves an organization by its workspace name.
	Organization(ctx context.Context, workspace string) (*board.Organization, error)

	// SearchBoards searches boards by name, scoped to an organization.
	SearchBoards(ctx context.Context, name, organizationID string) (*board.SearchResult, error)

	// Board returns a single board by id.
	Board(ctx context.Context, id string) (*board.Board, error)

	// CreateWebhook registers a webhook subscription.
	CreateWebhook(ctx context.Context, payload board.WebhookCreate) (*board.Webhook, error)

	// Webhook returns a webhook subscription by id.
	Webhook(ctx context.Context, id string) (*board.Webhook, error)

	// ActiveWebhooks lists the webhook subscriptions registered for the
	// authenticated token.
	ActiveWebhooks(ctx context.Context) ([]board.Webhook, error)

	// DeleteWebhook removes a webhook subscription by id.
	DeleteWebhook(ctx context.Context, id string) error
}

// Credentials selects the per-user authentication a Provider factory needs:
// the app's API key plus the user's token.
type Credentials struct {
	APIKey string
	Token  string
}

// Factory builds a Provider bound to one user's credentials. The
// orchestrator constructs a fresh provider per inbound call.
type Factory func(creds Credentials) Provider

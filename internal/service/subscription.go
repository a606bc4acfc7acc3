package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	bbotel "github.com/Strob0t/BoardBridge/internal/adapter/otel"
	"github.com/Strob0t/BoardBridge/internal/domain/board"
	"github.com/Strob0t/BoardBridge/internal/domain/call"
	"github.com/Strob0t/BoardBridge/internal/domain/failure"
	"github.com/Strob0t/BoardBridge/internal/i18n"
	"github.com/Strob0t/BoardBridge/internal/port/boardprovider"
)

// SubscriptionService runs the three form-call chains: add, remove and list
// webhook subscriptions. Each chain is strictly sequential and aborts on the
// first failure.
type SubscriptionService struct {
	providers boardprovider.Factory
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(providers boardprovider.Factory) *SubscriptionService {
	return &SubscriptionService{providers: providers}
}

// prepare runs the shared head of every chain: structural validation and the
// token presence check. No remote call happens before both pass.
func (s *SubscriptionService) prepare(req *call.Request, loc *i18n.Localizer) (boardprovider.Provider, error) {
	if err := req.Validate(); err != nil {
		return nil, failure.Wrap(err, failure.KindMarkdown,
			loc.Text(i18n.KeyInvalidForm), req.Context.SiteURL, req.Context.AppPath)
	}
	token, err := req.Context.OAuth2.Token()
	if err != nil {
		return nil, failure.Wrap(err, failure.KindMarkdown,
			loc.Text(i18n.KeyNotConnected), req.Context.SiteURL, req.Context.AppPath)
	}
	return s.providers(boardprovider.Credentials{
		APIKey: req.Context.OAuth2.ClientID,
		Token:  token,
	}), nil
}

// remoteFailure collapses any remote-call error into the uniform localized
// Trello-error message. Which external call failed is not distinguished.
func remoteFailure(err error, req *call.Request, loc *i18n.Localizer) error {
	return failure.Wrap(err, failure.KindMarkdown,
		loc.Text(i18n.KeyTrelloError), req.Context.SiteURL, req.Context.AppPath)
}

// AddSubscription resolves the named board within the session's workspace and
// creates a Trello webhook pointing back at this app's incoming-webhook route.
func (s *SubscriptionService) AddSubscription(ctx context.Context, req *call.Request, loc *i18n.Localizer) error {
	ctx, span := bbotel.StartChainSpan(ctx, "add", req.Context.UserID)
	defer span.End()

	provider, err := s.prepare(req, loc)
	if err != nil {
		return err
	}
	if req.Values.BoardName == "" || req.Values.ChannelID == nil || req.Values.ChannelID.Value == "" {
		return failure.New(failure.KindMarkdown,
			loc.Text(i18n.KeyInvalidForm), req.Context.SiteURL, req.Context.AppPath)
	}

	org, err := provider.Organization(ctx, req.Context.OAuth2.Workspace())
	if err != nil {
		return remoteFailure(err, req, loc)
	}

	result, err := provider.SearchBoards(ctx, req.Values.BoardName, org.ID)
	if err != nil {
		return remoteFailure(err, req, loc)
	}
	if len(result.Boards) == 0 {
		return failure.New(failure.KindMarkdown,
			loc.Text(i18n.KeyBoardNotFound, req.Values.BoardName),
			req.Context.SiteURL, req.Context.AppPath)
	}
	target := result.Boards[0]

	var secret string
	if req.Context.App != nil {
		secret = req.Context.App.WebhookSecret
	}
	callbackURL, err := board.CallbackURL(req.Context.SiteURL, req.Context.AppPath,
		secret, req.Values.ChannelID.Value)
	if err != nil {
		return remoteFailure(err, req, loc)
	}

	created, err := provider.CreateWebhook(ctx, board.WebhookCreate{
		Description: loc.Text(i18n.KeyDescription, req.Values.ChannelID.Label, target.Name),
		IDModel:     target.ID,
		CallbackURL: callbackURL,
	})
	if err != nil {
		return remoteFailure(err, req, loc)
	}

	slog.Info("subscription added",
		"webhook_id", created.ID,
		"board_id", target.ID,
		"channel_id", req.Values.ChannelID.Value,
	)
	return nil
}

// RemoveSubscription deletes the webhook named by the subscription form value.
// The board behind the webhook is looked up first to confirm the reference is
// still valid.
func (s *SubscriptionService) RemoveSubscription(ctx context.Context, req *call.Request, loc *i18n.Localizer) error {
	ctx, span := bbotel.StartChainSpan(ctx, "remove", req.Context.UserID)
	defer span.End()

	provider, err := s.prepare(req, loc)
	if err != nil {
		return err
	}
	if req.Values.Subscription == "" {
		return failure.New(failure.KindMarkdown,
			loc.Text(i18n.KeyInvalidForm), req.Context.SiteURL, req.Context.AppPath)
	}

	webhook, err := provider.Webhook(ctx, req.Values.Subscription)
	if err != nil {
		return remoteFailure(err, req, loc)
	}

	params, err := board.CallbackParams(webhook.CallbackURL)
	if err != nil {
		return remoteFailure(err, req, loc)
	}
	idModel := params.Get(board.ParamIDModel)
	if idModel == "" {
		return remoteFailure(fmt.Errorf("callback URL %q has no %s parameter",
			webhook.CallbackURL, board.ParamIDModel), req, loc)
	}

	if _, err := provider.Board(ctx, idModel); err != nil {
		return remoteFailure(err, req, loc)
	}

	if err := provider.DeleteWebhook(ctx, req.Values.Subscription); err != nil {
		return remoteFailure(err, req, loc)
	}

	slog.Info("subscription removed", "webhook_id", req.Values.Subscription, "board_id", idModel)
	return nil
}

// ListSubscriptions returns the active webhooks for the session's token as a
// formatted text block: a header with the count, then one line per webhook.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, req *call.Request, loc *i18n.Localizer) (string, error) {
	ctx, span := bbotel.StartChainSpan(ctx, "list", req.Context.UserID)
	defer span.End()

	provider, err := s.prepare(req, loc)
	if err != nil {
		return "", err
	}

	webhooks, err := provider.ActiveWebhooks(ctx)
	if err != nil {
		return "", remoteFailure(err, req, loc)
	}

	lines := make([]string, 0, len(webhooks)+1)
	lines = append(lines, loc.Text(i18n.KeyListHeader, len(webhooks)))
	for _, w := range webhooks {
		lines = append(lines, loc.Text(i18n.KeyListItem, w.ID, w.Description))
	}
	return strings.Join(lines, "\n"), nil
}

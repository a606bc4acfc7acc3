package service_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/Strob0t/BoardBridge/internal/domain/board"
	"github.com/Strob0t/BoardBridge/internal/domain/call"
	"github.com/Strob0t/BoardBridge/internal/domain/failure"
	"github.com/Strob0t/BoardBridge/internal/i18n"
	"github.com/Strob0t/BoardBridge/internal/port/boardprovider"
	"github.com/Strob0t/BoardBridge/internal/service"
)

var errRemote = errors.New("trello unreachable")

// mockProvider is a Provider mock that counts every remote call.
type mockProvider struct {
	creds boardprovider.Credentials
	calls []string

	org          board.Organization
	orgErr       error
	search       board.SearchResult
	searchErr    error
	created      board.Webhook
	createErr    error
	webhook      board.Webhook
	webhookErr   error
	active       []board.Webhook
	activeErr    error
	boardByID    board.Board
	boardErr     error
	deleteErr    error
	lastCreate   board.WebhookCreate
	lastSearched string
	lastOrgID    string
	lastBoardID  string
	lastDeleted  string
}

func (m *mockProvider) Organization(_ context.Context, workspace string) (*board.Organization, error) {
	m.calls = append(m.calls, "organization")
	return &m.org, m.orgErr
}

func (m *mockProvider) SearchBoards(_ context.Context, name, organizationID string) (*board.SearchResult, error) {
	m.calls = append(m.calls, "search")
	m.lastSearched = name
	m.lastOrgID = organizationID
	return &m.search, m.searchErr
}

func (m *mockProvider) CreateWebhook(_ context.Context, payload board.WebhookCreate) (*board.Webhook, error) {
	m.calls = append(m.calls, "create")
	m.lastCreate = payload
	return &m.created, m.createErr
}

func (m *mockProvider) Webhook(_ context.Context, id string) (*board.Webhook, error) {
	m.calls = append(m.calls, "webhook")
	return &m.webhook, m.webhookErr
}

func (m *mockProvider) ActiveWebhooks(_ context.Context) ([]board.Webhook, error) {
	m.calls = append(m.calls, "active")
	return m.active, m.activeErr
}

func (m *mockProvider) DeleteWebhook(_ context.Context, id string) error {
	m.calls = append(m.calls, "delete")
	m.lastDeleted = id
	return m.deleteErr
}

func (m *mockProvider) Board(_ context.Context, id string) (*board.Board, error) {
	m.calls = append(m.calls, "board")
	m.lastBoardID = id
	return &m.boardByID, m.boardErr
}

func newTestService(m *mockProvider) *service.SubscriptionService {
	return service.NewSubscriptionService(func(creds boardprovider.Credentials) boardprovider.Provider {
		m.creds = creds
		return m
	})
}

func englishLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()
	return i18n.NewBundle().ForLocale("en")
}

func validAddRequest() *call.Request {
	return &call.Request{
		Path: "/add",
		Context: call.Context{
			SiteURL: "https://mm.example.com",
			AppPath: "/plugins/com.mattermost.apps/apps/boardbridge",
			App:     &call.App{WebhookSecret: "s3cret"},
			OAuth2: call.OAuth2App{
				ClientID: "apikey1",
				User:     &call.OAuth2User{Token: "tok1"},
				Data:     &call.OAuth2Data{Workspace: "acme"},
			},
		},
		Values: call.Values{
			BoardName: "Roadmap",
			ChannelID: &call.Lookup{Value: "chan1", Label: "town-square"},
		},
	}
}

func TestAddSubscriptionInvalidCallMakesNoRemoteCalls(t *testing.T) {
	m := &mockProvider{}
	svc := newTestService(m)

	req := validAddRequest()
	req.Context.SiteURL = ""

	err := svc.AddSubscription(context.Background(), req, englishLocalizer(t))
	if err == nil {
		t.Fatal("expected failure for invalid call")
	}
	if len(m.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", m.calls)
	}
	if _, ok := failure.As(err); !ok {
		t.Fatalf("expected a localized failure, got %T", err)
	}
}

func TestAddSubscriptionMissingTokenMakesNoRemoteCalls(t *testing.T) {
	m := &mockProvider{}
	svc := newTestService(m)

	req := validAddRequest()
	req.Context.OAuth2.User = nil

	err := svc.AddSubscription(context.Background(), req, englishLocalizer(t))
	if err == nil {
		t.Fatal("expected failure for missing token")
	}
	if len(m.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", m.calls)
	}
}

func TestAddSubscriptionMissingValuesMakesNoRemoteCalls(t *testing.T) {
	m := &mockProvider{}
	svc := newTestService(m)

	req := validAddRequest()
	req.Values.BoardName = ""

	if err := svc.AddSubscription(context.Background(), req, englishLocalizer(t)); err == nil {
		t.Fatal("expected failure for missing board name")
	}
	if len(m.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", m.calls)
	}
}

func TestAddSubscriptionBoardNotFound(t *testing.T) {
	m := &mockProvider{
		org:    board.Organization{ID: "org1"},
		search: board.SearchResult{},
	}
	svc := newTestService(m)

	err := svc.AddSubscription(context.Background(), validAddRequest(), englishLocalizer(t))
	if err == nil {
		t.Fatal("expected board-not-found failure")
	}
	f, ok := failure.As(err)
	if !ok {
		t.Fatalf("expected a localized failure, got %T", err)
	}
	if !strings.Contains(f.Message, `"Roadmap"`) {
		t.Fatalf("expected message to name the searched board, got %q", f.Message)
	}
	for _, c := range m.calls {
		if c == "create" {
			t.Fatal("create must not run after a failed search")
		}
	}
}

func TestAddSubscriptionSuccess(t *testing.T) {
	m := &mockProvider{
		org: board.Organization{ID: "org1"},
		search: board.SearchResult{Boards: []board.Board{
			{ID: "board1", Name: "Roadmap"},
			{ID: "board2", Name: "Roadmap Archive"},
		}},
		created: board.Webhook{ID: "wh1"},
	}
	svc := newTestService(m)

	if err := svc.AddSubscription(context.Background(), validAddRequest(), englishLocalizer(t)); err != nil {
		t.Fatalf("AddSubscription failed: %v", err)
	}

	want := []string{"organization", "search", "create"}
	if len(m.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, m.calls)
	}
	for i, c := range want {
		if m.calls[i] != c {
			t.Fatalf("expected calls %v, got %v", want, m.calls)
		}
	}

	if m.creds.APIKey != "apikey1" || m.creds.Token != "tok1" {
		t.Fatalf("unexpected credentials: %+v", m.creds)
	}
	if m.lastSearched != "Roadmap" || m.lastOrgID != "org1" {
		t.Fatalf("unexpected search args: %q in %q", m.lastSearched, m.lastOrgID)
	}
	// first match wins
	if m.lastCreate.IDModel != "board1" {
		t.Fatalf("expected first search match, got %q", m.lastCreate.IDModel)
	}
	if !strings.Contains(m.lastCreate.Description, "town-square") ||
		!strings.Contains(m.lastCreate.Description, "Roadmap") {
		t.Fatalf("description missing channel label or board name: %q", m.lastCreate.Description)
	}

	u, err := url.Parse(m.lastCreate.CallbackURL)
	if err != nil {
		t.Fatalf("callback URL does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("secret") != "s3cret" {
		t.Fatalf("expected secret in callback URL, got %q", q.Get("secret"))
	}
	if q.Get("channelId") != "chan1" {
		t.Fatalf("expected channelId in callback URL, got %q", q.Get("channelId"))
	}
	if !strings.HasPrefix(m.lastCreate.CallbackURL,
		"https://mm.example.com/plugins/com.mattermost.apps/apps/boardbridge/webhook") {
		t.Fatalf("unexpected callback URL base: %q", m.lastCreate.CallbackURL)
	}
}

func TestAddSubscriptionRemoteErrorIsUniform(t *testing.T) {
	m := &mockProvider{orgErr: errRemote}
	svc := newTestService(m)

	err := svc.AddSubscription(context.Background(), validAddRequest(), englishLocalizer(t))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, errRemote) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	f, ok := failure.As(err)
	if !ok {
		t.Fatalf("expected a localized failure, got %T", err)
	}
	if strings.Contains(f.Message, errRemote.Error()) {
		t.Fatalf("raw transport error leaked into message: %q", f.Message)
	}
}

func validRemoveRequest() *call.Request {
	req := validAddRequest()
	req.Path = "/remove"
	req.Values = call.Values{Subscription: "wh1"}
	return req
}

func TestRemoveSubscriptionChain(t *testing.T) {
	m := &mockProvider{
		webhook: board.Webhook{
			ID:          "wh1",
			CallbackURL: "https://mm.example.com/apps/boardbridge/webhook?secret=s3cret&channelId=chan1&idModel=board1",
		},
		boardByID: board.Board{ID: "board1", Name: "Roadmap"},
	}
	svc := newTestService(m)

	if err := svc.RemoveSubscription(context.Background(), validRemoveRequest(), englishLocalizer(t)); err != nil {
		t.Fatalf("RemoveSubscription failed: %v", err)
	}

	want := []string{"webhook", "board", "delete"}
	if len(m.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, m.calls)
	}
	for i, c := range want {
		if m.calls[i] != c {
			t.Fatalf("expected calls %v, got %v", want, m.calls)
		}
	}
	if m.lastBoardID != "board1" {
		t.Fatalf("expected board lookup with parsed idModel, got %q", m.lastBoardID)
	}
	if m.lastDeleted != "wh1" {
		t.Fatalf("expected delete of wh1, got %q", m.lastDeleted)
	}
}

func TestRemoveSubscriptionBoardLookupFailureAborts(t *testing.T) {
	m := &mockProvider{
		webhook: board.Webhook{
			ID:          "wh1",
			CallbackURL: "https://mm.example.com/apps/boardbridge/webhook?idModel=board1",
		},
		boardErr: errRemote,
	}
	svc := newTestService(m)

	if err := svc.RemoveSubscription(context.Background(), validRemoveRequest(), englishLocalizer(t)); err == nil {
		t.Fatal("expected failure")
	}
	for _, c := range m.calls {
		if c == "delete" {
			t.Fatal("delete must not run after a failed board lookup")
		}
	}
}

func TestRemoveSubscriptionMissingIDModel(t *testing.T) {
	m := &mockProvider{
		webhook: board.Webhook{
			ID:          "wh1",
			CallbackURL: "https://mm.example.com/apps/boardbridge/webhook?secret=s3cret",
		},
	}
	svc := newTestService(m)

	err := svc.RemoveSubscription(context.Background(), validRemoveRequest(), englishLocalizer(t))
	if err == nil {
		t.Fatal("expected failure for callback URL without idModel")
	}
	if _, ok := failure.As(err); !ok {
		t.Fatalf("expected a localized failure, got %T", err)
	}
	for _, c := range m.calls {
		if c == "board" || c == "delete" {
			t.Fatalf("chain continued past the parse failure: %v", m.calls)
		}
	}
}

func TestListSubscriptionsFormatting(t *testing.T) {
	m := &mockProvider{
		active: []board.Webhook{
			{ID: "wh1", Description: "first"},
			{ID: "wh2", Description: "second"},
		},
	}
	svc := newTestService(m)

	req := validAddRequest()
	req.Path = "/list"
	req.Values = call.Values{}

	text, err := svc.ListSubscriptions(context.Background(), req, englishLocalizer(t))
	if err != nil {
		t.Fatalf("ListSubscriptions failed: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two lines, got %q", text)
	}
	if !strings.Contains(lines[0], "2") {
		t.Fatalf("header missing count: %q", lines[0])
	}
	if !strings.Contains(lines[1], "wh1") || !strings.Contains(lines[1], "first") {
		t.Fatalf("line missing id or description: %q", lines[1])
	}

	// listing has no side effects and is repeatable
	again, err := svc.ListSubscriptions(context.Background(), req, englishLocalizer(t))
	if err != nil {
		t.Fatalf("second ListSubscriptions failed: %v", err)
	}
	if again != text {
		t.Fatalf("expected identical output, got %q vs %q", again, text)
	}
}

func TestListSubscriptionsEmpty(t *testing.T) {
	m := &mockProvider{}
	svc := newTestService(m)

	req := validAddRequest()
	req.Values = call.Values{}

	text, err := svc.ListSubscriptions(context.Background(), req, englishLocalizer(t))
	if err != nil {
		t.Fatalf("ListSubscriptions failed: %v", err)
	}
	if !strings.Contains(text, "0") {
		t.Fatalf("expected zero count in header, got %q", text)
	}
	if strings.Contains(text, "\n") {
		t.Fatalf("expected header only, got %q", text)
	}
}

func TestListSubscriptionsMissingToken(t *testing.T) {
	m := &mockProvider{}
	svc := newTestService(m)

	req := validAddRequest()
	req.Context.OAuth2.User = nil

	if _, err := svc.ListSubscriptions(context.Background(), req, englishLocalizer(t)); err == nil {
		t.Fatal("expected failure for missing token")
	}
	if len(m.calls) != 0 {
		t.Fatalf("expected zero remote calls, got %v", m.calls)
	}
}

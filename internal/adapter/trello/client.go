// Package trello provides an HTTP client for the Trello REST API,
// implementing the boardprovider port. Authentication (API key + user
// token) is re-derived on every request from the credentials the client
// was constructed with; each operation is one request/response exchange.
package trello

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Strob0t/BoardBridge/internal/domain/board"
	"github.com/Strob0t/BoardBridge/internal/port/boardprovider"
	"github.com/Strob0t/BoardBridge/internal/resilience"
)

// Client talks to the Trello REST API on behalf of one user.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
	breaker    *resilience.Breaker
}

// NewClient creates a Trello client bound to one user's credentials.
func NewClient(baseURL string, creds boardprovider.Credentials) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  creds.APIKey,
		token:   creds.Token,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Factory returns a boardprovider.Factory building clients against baseURL
// that share the given breaker.
func Factory(baseURL string, breaker *resilience.Breaker) boardprovider.Factory {
	return func(creds boardprovider.Credentials) boardprovider.Provider {
		c := NewClient(baseURL, creds)
		c.SetBreaker(breaker)
		return c
	}
}

// SetBreaker attaches a circuit breaker to all outgoing HTTP calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// Organization resolves an organization by its workspace name.
func (c *Client) Organization(ctx context.Context, workspace string) (*board.Organization, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/organizations/"+url.PathEscape(workspace), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}

	var org board.Organization
	if err := json.Unmarshal(resp, &org); err != nil {
		return nil, fmt.Errorf("unmarshal organization: %w", err)
	}
	return &org, nil
}

// SearchBoards searches boards by name within an organization.
func (c *Client) SearchBoards(ctx context.Context, name, organizationID string) (*board.SearchResult, error) {
	query := url.Values{
		"query":           {name},
		"idOrganizations": {organizationID},
		"modelTypes":      {"boards"},
		"board_fields":    {"name"},
	}
	resp, err := c.doRequest(ctx, http.MethodGet, "/search", query, nil)
	if err != nil {
		return nil, fmt.Errorf("search boards: %w", err)
	}

	var result board.SearchResult
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("unmarshal search result: %w", err)
	}
	return &result, nil
}

// Board returns a single board by id.
func (c *Client) Board(ctx context.Context, id string) (*board.Board, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/boards/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}

	var b board.Board
	if err := json.Unmarshal(resp, &b); err != nil {
		return nil, fmt.Errorf("unmarshal board: %w", err)
	}
	return &b, nil
}

// CreateWebhook registers a webhook subscription.
func (c *Client) CreateWebhook(ctx context.Context, payload board.WebhookCreate) (*board.Webhook, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook create: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/webhooks", nil, body)
	if err != nil {
		return nil, fmt.Errorf("create webhook: %w", err)
	}

	var wh board.Webhook
	if err := json.Unmarshal(resp, &wh); err != nil {
		return nil, fmt.Errorf("unmarshal webhook: %w", err)
	}
	return &wh, nil
}

// Webhook returns a webhook subscription by id.
func (c *Client) Webhook(ctx context.Context, id string) (*board.Webhook, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/webhooks/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get webhook: %w", err)
	}

	var wh board.Webhook
	if err := json.Unmarshal(resp, &wh); err != nil {
		return nil, fmt.Errorf("unmarshal webhook: %w", err)
	}
	return &wh, nil
}

// ActiveWebhooks lists the webhook subscriptions registered for the token.
func (c *Client) ActiveWebhooks(ctx context.Context) ([]board.Webhook, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/tokens/"+url.PathEscape(c.token)+"/webhooks", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}

	var webhooks []board.Webhook
	if err := json.Unmarshal(resp, &webhooks); err != nil {
		return nil, fmt.Errorf("unmarshal webhooks: %w", err)
	}
	return webhooks, nil
}

// DeleteWebhook removes a webhook subscription by id.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, http.MethodDelete, "/webhooks/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	var result []byte
	call := func() error {
		if query == nil {
			query = url.Values{}
		}
		query.Set("key", c.apiKey)
		query.Set("token", c.token)

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query.Encode(), bodyReader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 400 {
			return fmt.Errorf("trello API error %d: %s", resp.StatusCode, string(data))
		}

		result = data
		return nil
	}

	if c.breaker != nil {
		if err := c.breaker.Execute(call); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := call(); err != nil {
		return nil, err
	}
	return result, nil
}

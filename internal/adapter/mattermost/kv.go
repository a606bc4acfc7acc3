// Package mattermost provides clients for the chat platform: the apps
// framework's generic key/value store and the REST endpoint used to post
// channel messages.
package mattermost

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
	"golang.org/x/oauth2"

	"github.com/Strob0t/BoardBridge/internal/domain"
)

// Apps-framework KV route pieces. The framework also exposes a dedicated
// /oauth2/user route; the stored user token currently rides the generic KV
// route instead (see KVStore doc on Set), so that route stays unused here.
const (
	appsPluginName = "com.mattermost.apps"
	apiVersionV1   = "/api/v1"
	kvPath         = "/kv"
)

// KVStore is a client for the platform's generic key/value store. Values
// are opaque JSON documents; the store itself is schema-agnostic and the
// caller picks the payload shape (plugin config, stored user token).
type KVStore struct {
	siteURL    string
	httpClient *http.Client
}

// NewKVStore creates a KV client for the platform at siteURL, authenticating
// every request with the given bearer token.
func NewKVStore(ctx context.Context, siteURL, accessToken string) *KVStore {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	base := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	return &KVStore{
		siteURL:    siteURL,
		httpClient: oauth2.NewClient(ctx, src),
	}
}

// Set stores value under key, replacing any previous value.
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal kv value: %w", err)
	}
	if _, err := s.doRequest(ctx, http.MethodPost, key, body); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key into out. Returns domain.ErrNotFound
// when the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string, out any) error {
	data, err := s.doRequest(ctx, http.MethodGet, key, nil)
	if err != nil {
		return fmt.Errorf("kv get %s: %w", key, err)
	}
	if len(data) == 0 {
		return domain.ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal kv value %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.doRequest(ctx, http.MethodDelete, key, nil); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) doRequest(ctx context.Context, method, key string, body []byte) ([]byte, error) {
	endpoint := s.siteURL + "/plugins/" + appsPluginName + apiVersionV1 + kvPath + "/" + url.PathEscape(key)

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("kv API error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

package mattermost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Poster sends messages into channels through the platform REST API using
// the app's bot token.
type Poster struct {
	siteURL    string
	botToken   string
	httpClient *http.Client
}

// NewPoster creates a channel poster for the platform at siteURL.
func NewPoster(siteURL, botToken string) *Poster {
	return &Poster{
		siteURL:  siteURL,
		botToken: botToken,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type post struct {
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
}

// Post writes a markdown message into the given channel.
func (p *Poster) Post(ctx context.Context, channelID, message string) error {
	body, err := json.Marshal(post{ChannelID: channelID, Message: message})
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.siteURL+"/api/v4/posts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.botToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("posts API error %d: %s", resp.StatusCode, string(data))
	}

	return nil
}

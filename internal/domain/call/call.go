// Package call defines the inbound form-call contract handed to the app by
// the Mattermost apps framework: request context, user-submitted values and
// the OAuth2 session attached to the acting user.
package call

import "github.com/Strob0t/BoardBridge/internal/domain"

// Request is one inbound operation request. Context and Values must both be
// present and well-formed before any remote call is attempted.
type Request struct {
	Path    string  `json:"path"`
	Context Context `json:"context"`
	Values  Values  `json:"values"`
}

// Context carries the routing and session data the framework resolves for
// every call.
type Context struct {
	SiteURL string    `json:"mattermost_site_url"`
	AppPath string    `json:"app_path"`
	Locale  string    `json:"locale,omitempty"`
	App     *App      `json:"app,omitempty"`
	OAuth2  OAuth2App `json:"oauth2"`
	ActingUser
}

// ActingUser identifies who submitted the form.
type ActingUser struct {
	UserID          string `json:"acting_user_id,omitempty"`
	UserAccessToken string `json:"acting_user_access_token,omitempty"`
}

// App holds app-level context, notably the shared webhook secret that gets
// embedded in callback URLs.
type App struct {
	WebhookSecret string `json:"webhook_secret"`
}

// OAuth2App is the OAuth2 session the framework maintains per user: the
// app's client id plus, once authorized, the user token and provider data.
type OAuth2App struct {
	ClientID string      `json:"client_id"`
	User     *OAuth2User `json:"user,omitempty"`
	Data     *OAuth2Data `json:"data,omitempty"`
}

// OAuth2User holds the authorized user's Trello token.
type OAuth2User struct {
	Token string `json:"token"`
}

// OAuth2Data holds provider-specific workspace data saved at connect time.
type OAuth2Data struct {
	Workspace string `json:"workspace"`
}

// Values is the user-submitted form payload, specific to each operation.
type Values struct {
	BoardName    string  `json:"board_name,omitempty"`
	ChannelID    *Lookup `json:"channel_id,omitempty"`
	Subscription string  `json:"subscription,omitempty"`
}

// Lookup is a select-field value: opaque id plus display label.
type Lookup struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Validate checks the structural invariants every handler relies on.
// It never touches the network.
func (r *Request) Validate() error {
	if r == nil || r.Context.SiteURL == "" || r.Context.AppPath == "" {
		return domain.ErrInvalidCall
	}
	return nil
}

// Token returns the session's Trello token, or ErrNotConnected when the
// user has not completed the OAuth flow.
func (o OAuth2App) Token() (string, error) {
	if o.User == nil || o.User.Token == "" {
		return "", domain.ErrNotConnected
	}
	return o.User.Token, nil
}

// Workspace returns the Trello workspace name stored at connect time.
func (o OAuth2App) Workspace() string {
	if o.Data == nil {
		return ""
	}
	return o.Data.Workspace
}

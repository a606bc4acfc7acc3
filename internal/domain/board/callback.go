package board

import (
	"fmt"
	"net/url"
)

// IncomingWebhookPath is the route Trello deliveries arrive on, appended to
// the app's install path when building callback URLs.
const IncomingWebhookPath = "/webhook"

// Callback query parameter names. These must round-trip: a stored callback
// URL is re-parsed later to recover the channel and model linkage.
const (
	ParamSecret    = "secret"
	ParamChannelID = "channelId"
	ParamIDModel   = "idModel"
)

// CallbackURL builds the webhook delivery endpoint for a subscription:
// {siteURL}{appPath}/webhook?secret=…&channelId=….
func CallbackURL(siteURL, appPath, secret, channelID string) (string, error) {
	u, err := url.Parse(siteURL + appPath + IncomingWebhookPath)
	if err != nil {
		return "", fmt.Errorf("build callback url: %w", err)
	}
	q := u.Query()
	q.Set(ParamSecret, secret)
	q.Set(ParamChannelID, channelID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// CallbackParams recovers the query parameters from a stored callback URL.
func CallbackParams(callbackURL string) (url.Values, error) {
	u, err := url.Parse(callbackURL)
	if err != nil {
		return nil, fmt.Errorf("parse callback url: %w", err)
	}
	return u.Query(), nil
}

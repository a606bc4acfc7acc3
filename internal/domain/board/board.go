// Package board defines domain types for the Trello entities this app
// touches: organizations, boards and webhook subscriptions.
package board

// Organization is the Trello tenant-scoping entity (a workspace).
type Organization struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
}

// Board is a Trello board resolved by id or name search.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResult is the board slice returned by a scoped name search.
type SearchResult struct {
	Boards []Board `json:"boards"`
}

// Webhook is a registered Trello webhook subscription. CallbackURL embeds
// the shared secret and target channel id as query parameters and is never
// mutated after creation.
type Webhook struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IDModel     string `json:"idModel"`
	CallbackURL string `json:"callbackURL"`
	Active      bool   `json:"active"`
}

// WebhookCreate is the creation payload for a webhook subscription.
type WebhookCreate struct {
	Description string `json:"description"`
	IDModel     string `json:"idModel"`
	CallbackURL string `json:"callbackURL"`
}

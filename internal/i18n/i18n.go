// Package i18n resolves user-facing message formatting for a request
// locale. Handlers resolve a Localizer once per call and pass it down
// explicitly; services never consult ambient locale state.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Each key is a message identifier resolved through the
// catalog; English is the fallback for unknown locales and missing entries.
const (
	KeyInvalidForm      = "call.invalid_form"
	KeyNotConnected     = "call.not_connected"
	KeyTrelloError      = "trello.error"
	KeyBoardNotFound    = "subscription.board_not_found"
	KeyDescription      = "subscription.description"
	KeyListHeader       = "subscription.list_header"
	KeyListItem         = "subscription.list_item"
	KeyCardNotification = "notification.card_event"
)

// Bundle holds the supported languages and translated catalogs.
type Bundle struct {
	matcher language.Matcher
	cat     catalog.Catalog
}

// NewBundle builds the app's message bundle (English, Spanish).
func NewBundle() *Bundle {
	return &Bundle{
		matcher: language.NewMatcher(supported),
		cat:     newCatalog(),
	}
}

// ForLocale returns a Localizer for the given BCP 47 locale. Empty or
// unknown locales resolve to English.
func (b *Bundle) ForLocale(locale string) *Localizer {
	tag, _ := language.MatchStrings(b.matcher, locale)
	return &Localizer{p: message.NewPrinter(tag, message.Catalog(b.cat))}
}

// Localizer formats messages for one resolved language.
type Localizer struct {
	p *message.Printer
}

// Text renders the message for key with the given arguments.
func (l *Localizer) Text(key string, args ...any) string {
	return l.p.Sprintf(key, args...)
}

// Package failure defines the single error shape that escapes a form
// handler: a localized, user-facing message plus the presentation hints the
// dispatch framework needs to render it. Raw transport errors never cross
// this boundary.
package failure

import "errors"

// Kind signals how the dispatch framework should render the failure.
type Kind string

// KindMarkdown renders the message as formatted text to the user.
const KindMarkdown Kind = "markdown"

// Failure carries a render hint, a localized message and the destination
// coordinates (site URL + app path) for routing the user-visible error.
type Failure struct {
	Kind    Kind
	Message string
	SiteURL string
	AppPath string

	cause error
}

// New creates a Failure with no underlying cause.
func New(kind Kind, message, siteURL, appPath string) *Failure {
	return &Failure{Kind: kind, Message: message, SiteURL: siteURL, AppPath: appPath}
}

// Wrap converts err into a Failure carrying the localized message. A nil
// err passes through unchanged, so call sites can wrap unconditionally.
func Wrap(err error, kind Kind, message, siteURL, appPath string) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: kind, Message: message, SiteURL: siteURL, AppPath: appPath, cause: err}
}

// Error returns the localized message; the cause stays internal.
func (f *Failure) Error() string { return f.Message }

// Unwrap exposes the cause to errors.Is/As without leaking it to users.
func (f *Failure) Unwrap() error { return f.cause }

// As reports whether err is (or wraps) a Failure, returning it when so.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

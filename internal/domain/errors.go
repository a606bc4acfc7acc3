// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidCall indicates a structurally invalid inbound call request.
var ErrInvalidCall = errors.New("invalid call request")

// ErrNotConnected indicates the acting user has not authorized Trello yet.
var ErrNotConnected = errors.New("user is not connected to trello")

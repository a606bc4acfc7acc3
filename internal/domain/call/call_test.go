package call

import (
	"errors"
	"testing"

	"github.com/Strob0t/BoardBridge/internal/domain"
)

func TestValidate(t *testing.T) {
	req := &Request{Context: Context{SiteURL: "https://mm.example.com", AppPath: "/apps/boardbridge"}}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMissingContext(t *testing.T) {
	cases := map[string]*Request{
		"nil request":  nil,
		"no site url":  {Context: Context{AppPath: "/apps/boardbridge"}},
		"no app path":  {Context: Context{SiteURL: "https://mm.example.com"}},
		"empty fields": {},
	}
	for name, req := range cases {
		if err := req.Validate(); !errors.Is(err, domain.ErrInvalidCall) {
			t.Fatalf("%s: expected ErrInvalidCall, got %v", name, err)
		}
	}
}

func TestOAuth2Token(t *testing.T) {
	o := OAuth2App{ClientID: "key1", User: &OAuth2User{Token: "tok1"}}
	tok, err := o.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "tok1" {
		t.Fatalf("expected tok1, got %q", tok)
	}
}

func TestOAuth2TokenMissing(t *testing.T) {
	for _, o := range []OAuth2App{{}, {User: &OAuth2User{}}} {
		if _, err := o.Token(); !errors.Is(err, domain.ErrNotConnected) {
			t.Fatalf("expected ErrNotConnected, got %v", err)
		}
	}
}

func TestWorkspace(t *testing.T) {
	o := OAuth2App{Data: &OAuth2Data{Workspace: "acme"}}
	if o.Workspace() != "acme" {
		t.Fatalf("expected acme, got %q", o.Workspace())
	}
	if (OAuth2App{}).Workspace() != "" {
		t.Fatal("expected empty workspace without data")
	}
}

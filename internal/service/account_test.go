package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Strob0t/BoardBridge/internal/domain"
	"github.com/Strob0t/BoardBridge/internal/domain/failure"
	"github.com/Strob0t/BoardBridge/internal/service"
)

// mockKV is an in-memory Store mock.
type mockKV struct {
	data map[string][]byte
	err  error
}

func newMockKV() *mockKV {
	return &mockKV{data: map[string][]byte{}}
}

func (m *mockKV) Set(_ context.Context, key string, value any) error {
	if m.err != nil {
		return m.err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *mockKV) Get(_ context.Context, key string, out any) error {
	if m.err != nil {
		return m.err
	}
	b, ok := m.data[key]
	if !ok {
		return domain.ErrNotFound
	}
	return json.Unmarshal(b, out)
}

func (m *mockKV) Delete(_ context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func TestAccountConfigRoundTrip(t *testing.T) {
	kv := newMockKV()
	svc := service.NewAccountService(kv)
	ctx := context.Background()

	in := service.StoredConfig{APIKey: "key1", Token: "tok1", Workspace: "acme"}
	if err := svc.StoreConfig(ctx, "user1", in); err != nil {
		t.Fatalf("StoreConfig failed: %v", err)
	}

	out, err := svc.LoadConfig(ctx, "user1")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestAccountStoreConfigRequiresAPIKey(t *testing.T) {
	svc := service.NewAccountService(newMockKV())
	if err := svc.StoreConfig(context.Background(), "user1", service.StoredConfig{}); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestAccountLoadConfigNotFound(t *testing.T) {
	svc := service.NewAccountService(newMockKV())
	_, err := svc.LoadConfig(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountConnectDisconnect(t *testing.T) {
	kv := newMockKV()
	svc := service.NewAccountService(kv)
	ctx := context.Background()
	loc := englishLocalizer(t)

	if err := svc.Connect(ctx, "user1", "tok1"); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	tok, err := svc.Token(ctx, "user1", loc, "https://mm.example.com", "/apps/boardbridge")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "tok1" {
		t.Fatalf("expected tok1, got %q", tok)
	}

	if err := svc.Disconnect(ctx, "user1"); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	_, err = svc.Token(ctx, "user1", loc, "https://mm.example.com", "/apps/boardbridge")
	if !errors.Is(err, domain.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if _, ok := failure.As(err); !ok {
		t.Fatalf("expected a localized failure, got %T", err)
	}
}

func TestAccountConnectRequiresToken(t *testing.T) {
	svc := service.NewAccountService(newMockKV())
	if err := svc.Connect(context.Background(), "user1", ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

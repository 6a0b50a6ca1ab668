package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

func TestCodeStore_SetGetDelete(t *testing.T) {
	store := NewCodeStore(0, zerolog.Nop())
	ctx := context.Background()

	entry := &domain.VerificationEntry{
		Code:      "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := store.Set(ctx, "alice@example.com", entry, 10*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != "123456" {
		t.Fatalf("unexpected code: %q", got.Code)
	}

	// The returned entry is a copy; mutating it must not affect the store.
	got.Attempts = 99
	again, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Attempts != 0 {
		t.Fatalf("expected store to be isolated from caller mutation, got attempts=%d", again.Attempts)
	}

	if err := store.Delete(ctx, "alice@example.com"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "alice@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound after delete, got %v", err)
	}
}

func TestCodeStore_GetMissing(t *testing.T) {
	store := NewCodeStore(0, zerolog.Nop())

	if _, err := store.Get(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestCodeStore_SetReplaces(t *testing.T) {
	store := NewCodeStore(0, zerolog.Nop())
	ctx := context.Background()

	first := &domain.VerificationEntry{Code: "111111", ExpiresAt: time.Now().Add(time.Minute)}
	second := &domain.VerificationEntry{Code: "222222", ExpiresAt: time.Now().Add(time.Minute)}
	_ = store.Set(ctx, "alice@example.com", first, time.Minute)
	_ = store.Set(ctx, "alice@example.com", second, time.Minute)

	got, err := store.Get(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Code != "222222" {
		t.Fatalf("expected replacement code, got %q", got.Code)
	}
}

func TestCodeStore_SweepRemovesExpired(t *testing.T) {
	store := NewCodeStore(0, zerolog.Nop())
	ctx := context.Background()

	now := time.Now()
	_ = store.Set(ctx, "stale@example.com", &domain.VerificationEntry{
		Code:      "111111",
		ExpiresAt: now.Add(-time.Minute),
	}, time.Minute)
	_ = store.Set(ctx, "fresh@example.com", &domain.VerificationEntry{
		Code:      "222222",
		ExpiresAt: now.Add(time.Minute),
	}, time.Minute)

	if removed := store.sweep(now); removed != 1 {
		t.Fatalf("expected one swept entry, got %d", removed)
	}
	if _, err := store.Get(ctx, "stale@example.com"); !errors.Is(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected stale entry gone, got %v", err)
	}
	if _, err := store.Get(ctx, "fresh@example.com"); err != nil {
		t.Fatalf("expected fresh entry to survive: %v", err)
	}
}

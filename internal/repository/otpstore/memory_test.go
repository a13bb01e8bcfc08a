package otpstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrilink/domain"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := Record{Code: "123456", ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Put(ctx, "233201234567", record); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "233201234567")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "123456" {
		t.Errorf("expected code 123456, got %s", got.Code)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "233201234567")
	if !errors.Is(err, domain.ErrOtpNotFound) {
		t.Errorf("expected ErrOtpNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiredRecordPurged(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := Record{Code: "123456", ExpiresAt: time.Now().Add(-time.Second)}
	if err := store.Put(ctx, "233201234567", record); err != nil {
		t.Fatalf("put: %v", err)
	}

	_, err := store.Get(ctx, "233201234567")
	if !errors.Is(err, domain.ErrOtpExpired) {
		t.Fatalf("expected ErrOtpExpired, got %v", err)
	}

	// the expired record is gone, a second read must report not found
	_, err = store.Get(ctx, "233201234567")
	if !errors.Is(err, domain.ErrOtpNotFound) {
		t.Errorf("expected ErrOtpNotFound after purge, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := Record{Code: "654321", ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Put(ctx, "233509876543", record); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "233509876543"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err := store.Get(ctx, "233509876543")
	if !errors.Is(err, domain.ErrOtpNotFound) {
		t.Errorf("expected ErrOtpNotFound, got %v", err)
	}
}

package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyCheckAndSetClaimsKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if exists {
		t.Fatalf("expected fresh key to not exist")
	}

	exists, val, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected claimed key to exist")
	}
	if string(val) != "processing" {
		t.Fatalf("expected processing placeholder, got %q", val)
	}
}

func TestIdempotencyUpdateStoresResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("check and set failed: %v", err)
	}

	response := []byte(`{"id":"transfer-1","status":"shipped"}`)
	if err := store.Update(ctx, "key-1", response, time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, val, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected key to exist after update")
	}
	if string(val) != string(response) {
		t.Fatalf("expected stored response, got %q", val)
	}
}

func TestIdempotencyReleaseDropsClaim(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("check and set failed: %v", err)
	}

	if err := store.Release(ctx, "key-1"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	// A released key can be claimed again.
	exists, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if exists {
		t.Fatalf("expected released key to be claimable")
	}
}

func TestIdempotencySetsResponseDirectly(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	response := []byte(`{"ok":true}`)

	exists, _, err := store.CheckAndSet(ctx, "key-2", response, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if exists {
		t.Fatalf("expected fresh key to not exist")
	}

	exists, val, err := store.CheckAndSet(ctx, "key-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("check and set failed: %v", err)
	}
	if !exists || string(val) != string(response) {
		t.Fatalf("expected stored response, got exists=%v val=%q", exists, val)
	}
}

package store

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, 0)
	req := testRequest()

	ok, err := s.Exists(ctx, req)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("Exists = true before any store")
	}

	payload := map[string]any{"gamelogs": []any{}}
	loc, err := s.Store(ctx, payload, req)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if loc != req.CacheKey() {
		t.Errorf("location = %q, want %q", loc, req.CacheKey())
	}

	ok, _ = s.Exists(ctx, req)
	if !ok {
		t.Fatal("Exists = false after store")
	}

	got, loaded, err := s.Load(ctx, req)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded {
		t.Fatal("Load reported absent after store")
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("Load = %#v, want %#v", got, payload)
	}
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(1, 0)

	first := testRequest()
	second := testRequest()
	second.Feed = "team_gamelogs"

	if _, err := s.Store(ctx, map[string]any{}, first); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Store(ctx, map[string]any{}, second); err != nil {
		t.Fatal(err)
	}

	if ok, _ := s.Exists(ctx, first); ok {
		t.Error("oldest entry not evicted at capacity 1")
	}
	if ok, _ := s.Exists(ctx, second); !ok {
		t.Error("newest entry missing")
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10, 10*time.Millisecond)
	req := testRequest()

	if _, err := s.Store(ctx, map[string]any{}, req); err != nil {
		t.Fatal(err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, ok, _ := s.Load(ctx, req); ok {
		t.Error("entry survived past its TTL")
	}
}

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/feed"
)

func testRequest() feed.Request {
	return feed.Request{
		League: "nba",
		Season: "2016-2017-regular",
		Feed:   "player_gamelogs",
		Format: feed.FormatJSON,
		Params: map[string]string{"player": "stephen-curry"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())
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
	if filepath.Base(loc) != "player_gamelogs-nba-2016-2017-regular.json" {
		t.Errorf("stored at %q, want cache-key filename", loc)
	}

	ok, err = s.Exists(ctx, req)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
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

func TestFileStoreWritesDecodableFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)
	req := testRequest()

	payload := map[string]any{"gamelogs": []any{}}
	if _, err := s.Store(ctx, payload, req); err != nil {
		t.Fatalf("Store: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "player_gamelogs-nba-2016-2017-regular.json"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	var onDisk any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("stored file is not valid json: %v", err)
	}
	if !reflect.DeepEqual(onDisk, payload) {
		t.Errorf("on-disk content = %#v, want %#v", onDisk, payload)
	}
}

func TestFileStoreLoadAbsent(t *testing.T) {
	s := NewFileStore(t.TempDir())
	data, ok, err := s.Load(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || data != nil {
		t.Errorf("Load of absent entry = (%v, %v), want (nil, false)", data, ok)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	s := NewFileStore(dir)

	if _, err := s.Store(context.Background(), map[string]any{}, testRequest()); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())
	req := testRequest()

	if _, err := s.Store(ctx, map[string]any{"v": float64(1)}, req); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := s.Store(ctx, map[string]any{"v": float64(2)}, req); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, _, err := s.Load(ctx, req)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"v": float64(2)}) {
		t.Errorf("Load after overwrite = %#v", got)
	}
}

func TestFileStoreSurfacesIOErrors(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(blocked)
	if _, err := s.Store(context.Background(), map[string]any{}, testRequest()); err == nil {
		t.Error("expected a filesystem error to surface, got nil")
	}
}

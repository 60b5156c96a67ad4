package api

import (
	"strings"
	"testing"

	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
)

func TestLookup(t *testing.T) {
	for _, name := range SupportedVersions {
		v, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
			continue
		}
		if v.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, v.Name)
		}
		if !strings.Contains(v.BaseURL, "v"+name) {
			t.Errorf("Lookup(%q).BaseURL = %q, want version segment", name, v.BaseURL)
		}
		if len(v.Feeds) == 0 {
			t.Errorf("Lookup(%q) has no feeds", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("3.0")
	if !errors.Is(err, errors.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "1.0") || !strings.Contains(err.Error(), "2.1") {
		t.Errorf("error should enumerate supported versions, got %q", err.Error())
	}
}

func TestAuthSchemes(t *testing.T) {
	for _, name := range []string{"1.0", "1.1", "1.2"} {
		v, _ := Lookup(name)
		if v.Auth != AuthBasic {
			t.Errorf("version %s should use basic auth", name)
		}
	}
	for _, name := range []string{"2.0", "2.1"} {
		v, _ := Lookup(name)
		if v.Auth != AuthAPIKey {
			t.Errorf("version %s should use api-key auth", name)
		}
	}
}

func TestKnownFeed(t *testing.T) {
	v12, _ := Lookup("1.2")
	if !v12.KnownFeed("player_gamelogs") {
		t.Error("player_gamelogs should be known to v1.2")
	}
	if v12.KnownFeed("players") {
		t.Error("players is a v2 feed, unknown to v1.2")
	}

	v20, _ := Lookup("2.0")
	if !v20.KnownFeed("players") {
		t.Error("players should be known to v2.0")
	}
	if v20.KnownFeed("cumulative_player_stats") {
		t.Error("cumulative_player_stats is a v1 feed, unknown to v2.0")
	}
}

func TestSeasonless(t *testing.T) {
	for _, f := range []string{"current_season", "players"} {
		if !seasonless(f) {
			t.Errorf("%s should be seasonless", f)
		}
	}
	if seasonless("player_gamelogs") {
		t.Error("player_gamelogs should carry a season segment")
	}
}

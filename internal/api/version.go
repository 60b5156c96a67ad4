package api

import (
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/errors"
)

// AuthScheme selects how a protocol version authenticates.
type AuthScheme int

const (
	// AuthBasic takes a username/password pair (v1 protocol family).
	AuthBasic AuthScheme = iota
	// AuthAPIKey takes a single API key sent as the basic-auth username
	// with a fixed password (v2 protocol family).
	AuthAPIKey
)

// Version is the per-version configuration record. Versions differ only
// in base URL, auth scheme and known-feed vocabulary; all request
// construction and response handling is shared by Client.
type Version struct {
	Name    string
	BaseURL string
	Auth    AuthScheme
	Feeds   []string

	feedSet map[string]struct{}
}

// KnownFeed reports whether name is in the version's feed vocabulary.
func (v Version) KnownFeed(name string) bool {
	_, ok := v.feedSet[name]
	return ok
}

var v1Feeds = []string{
	"cumulative_player_stats",
	"full_game_schedule",
	"daily_game_schedule",
	"daily_player_stats",
	"game_boxscore",
	"scoreboard",
	"game_playbyplay",
	"player_gamelogs",
	"team_gamelogs",
	"roster_players",
	"game_startinglineup",
	"active_players",
	"overall_team_standings",
	"conference_team_standings",
	"division_team_standings",
	"playoff_team_standings",
	"player_injuries",
	"daily_dfs",
	"current_season",
	"latest_updates",
}

var v2Feeds = []string{
	"seasonal_games",
	"daily_games",
	"weekly_games",
	"seasonal_dfs",
	"daily_dfs",
	"weekly_dfs",
	"seasonal_player_gamelogs",
	"daily_player_gamelogs",
	"weekly_player_gamelogs",
	"seasonal_team_gamelogs",
	"daily_team_gamelogs",
	"weekly_team_gamelogs",
	"game_boxscore",
	"game_playbyplay",
	"game_lineup",
	"current_season",
	"player_injuries",
	"latest_updates",
	"seasonal_team_stats",
	"daily_team_stats",
	"seasonal_player_stats",
	"daily_player_stats",
	"seasonal_venues",
	"seasonal_standings",
	"players",
}

// SupportedVersions lists every protocol version, oldest first.
var SupportedVersions = []string{"1.0", "1.1", "1.2", "2.0", "2.1"}

var versions = map[string]Version{
	"1.0": {Name: "1.0", BaseURL: "https://api.mysportsfeeds.com/v1.0/pull", Auth: AuthBasic, Feeds: v1Feeds},
	"1.1": {Name: "1.1", BaseURL: "https://api.mysportsfeeds.com/v1.1/pull", Auth: AuthBasic, Feeds: v1Feeds},
	"1.2": {Name: "1.2", BaseURL: "https://api.mysportsfeeds.com/v1.2/pull", Auth: AuthBasic, Feeds: v1Feeds},
	"2.0": {Name: "2.0", BaseURL: "https://api.mysportsfeeds.com/v2.0/pull", Auth: AuthAPIKey, Feeds: v2Feeds},
	"2.1": {Name: "2.1", BaseURL: "https://api.mysportsfeeds.com/v2.1/pull", Auth: AuthAPIKey, Feeds: v2Feeds},
}

func init() {
	for name, v := range versions {
		v.feedSet = make(map[string]struct{}, len(v.Feeds))
		for _, f := range v.Feeds {
			v.feedSet[f] = struct{}{}
		}
		versions[name] = v
	}
}

// Lookup resolves a version string to its configuration record.
func Lookup(name string) (Version, error) {
	v, ok := versions[name]
	if !ok {
		return Version{}, errors.Newf(errors.KindConfiguration,
			"unrecognized version %q, supported versions are: %v", name, SupportedVersions)
	}
	return v, nil
}

// seasonless feeds have no season segment in their URL; the players
// listing additionally routes any caller-supplied season into the query
// parameters instead.
func seasonless(feedName string) bool {
	return feedName == "current_season" || feedName == "players"
}

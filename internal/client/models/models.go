// Package models holds the client-side view of Street Smarts data as it
// travels over the HTTP API and into the local game history.
package models

import (
	"strings"
	"time"
)

// Location is one round's target as returned by GET /random_location.
type Location struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ImageURL   string  `json:"image_url"`
	ImageError string  `json:"image_error,omitempty"`
}

// ImageLink returns the image reference as an absolute URL. References
// served by the game server itself ("/cache/...") are joined with baseURL;
// anything else is returned unchanged.
func (l Location) ImageLink(baseURL string) string {
	if !strings.HasPrefix(l.ImageURL, "/") {
		return l.ImageURL
	}
	return strings.TrimRight(baseURL, "/") + l.ImageURL
}

// GuessResult is the outcome of POST /submit_guess.
type GuessResult struct {
	DistanceMeters float64 `json:"distance_meters"`
	PointsAwarded  int     `json:"points_awarded"`
	TotalScore     int64   `json:"total_score"`
	RoundsPlayed   int64   `json:"rounds_played"`
}

// LeaderboardEntry is one row of GET /leaderboard.
type LeaderboardEntry struct {
	Username     string `json:"username"`
	TotalScore   int64  `json:"total_score"`
	RoundsPlayed int64  `json:"rounds_played"`
}

// Profile is the current user's standing, as returned by GET /me.
type Profile struct {
	Username     string `json:"username"`
	TotalScore   int64  `json:"total_score"`
	RoundsPlayed int64  `json:"rounds_played"`
}

// RoundResult pairs a played location with the server's verdict.
type RoundResult struct {
	Location Location
	Result   GuessResult
}

// GameRecord is a finished game kept in the local history.
type GameRecord struct {
	ID         int64
	Username   string
	Rounds     int
	Points     int64
	FinishedAt time.Time
}

// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered player. TotalScore and RoundsPlayed only ever grow.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	TotalScore   int64
	RoundsPlayed int64
	CreatedAt    time.Time
}

// LeaderboardEntry is one row of the public ranking.
type LeaderboardEntry struct {
	UserName     string
	TotalScore   int64
	RoundsPlayed int64
}

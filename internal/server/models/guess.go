package models

// Guess is a single submitted round.
type Guess struct {
	UserID     string
	LocationID int64
	Lat        float64
	Lng        float64
}

// GuessResult is the outcome of a Guess after the user's totals were updated.
type GuessResult struct {
	DistanceMeters float64
	PointsAwarded  int
	TotalScore     int64
	RoundsPlayed   int64
}

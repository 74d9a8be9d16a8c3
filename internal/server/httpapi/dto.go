package httpapi

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type locationResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ImageURL   string  `json:"image_url"`
	ImageError string  `json:"image_error,omitempty"`
}

// guessRequest uses pointers so a missing field is distinguishable from zero.
type guessRequest struct {
	LocationID *int64   `json:"location_id"`
	GuessLat   *float64 `json:"guess_lat"`
	GuessLng   *float64 `json:"guess_lng"`
}

type guessResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
	PointsAwarded  int     `json:"points_awarded"`
	TotalScore     int64   `json:"total_score"`
	RoundsPlayed   int64   `json:"rounds_played"`
}

type leaderboardEntry struct {
	Username     string `json:"username"`
	TotalScore   int64  `json:"total_score"`
	RoundsPlayed int64  `json:"rounds_played"`
}

type debugResponse struct {
	CacheFiles []string `json:"cache_files"`
}

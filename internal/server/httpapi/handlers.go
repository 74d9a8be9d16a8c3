package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/dmitrijs2005/streetsmarts/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"msg": "user created"})
	case errors.Is(err, common.ErrAlreadyExists):
		badRequest(c, "Username already registered")
	case errors.Is(err, common.ErrValidation):
		badRequest(c, validationDetail(err))
	default:
		s.internalError(c, err)
	}
}

func (s *HTTPServer) token(c *gin.Context) {
	var form tokenForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	tok, err := s.users.Login(c.Request.Context(), form.Username, form.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tokenResponse{AccessToken: tok, TokenType: common.TokenType})
	case errors.Is(err, common.ErrorUnauthorized):
		badRequest(c, "Incorrect username or password")
	default:
		s.internalError(c, err)
	}
}

func (s *HTTPServer) randomLocation(c *gin.Context) {
	round, err := s.game.RandomLocation(c.Request.Context())
	if err != nil {
		if errors.Is(err, common.ErrNoLocations) {
			notFound(c, "No locations available")
			return
		}
		s.internalError(c, err)
		return
	}

	loc := round.Location
	c.JSON(http.StatusOK, locationResponse{
		ID:         loc.ID,
		Name:       loc.Name,
		Lat:        loc.Lat,
		Lng:        loc.Lng,
		ImageURL:   round.ImageURL,
		ImageError: round.ImageError,
	})
}

func (s *HTTPServer) submitGuess(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.LocationID == nil || req.GuessLat == nil || req.GuessLng == nil {
		badRequest(c, "location_id, guess_lat and guess_lng are required")
		return
	}

	user := currentUser(c)
	res, err := s.game.SubmitGuess(c.Request.Context(), models.Guess{
		UserID:     user.ID,
		LocationID: *req.LocationID,
		Lat:        *req.GuessLat,
		Lng:        *req.GuessLng,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, guessResponse{
			DistanceMeters: res.DistanceMeters,
			PointsAwarded:  res.PointsAwarded,
			TotalScore:     res.TotalScore,
			RoundsPlayed:   res.RoundsPlayed,
		})
	case errors.Is(err, common.ErrValidation):
		badRequest(c, validationDetail(err))
	case errors.Is(err, common.ErrorNotFound):
		notFound(c, "Location not found")
	default:
		s.internalError(c, err)
	}
}

func (s *HTTPServer) leaderboard(c *gin.Context) {
	limit := services.DefaultLeaderboardLimit
	if raw, ok := c.GetQuery("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	rows, err := s.game.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		s.internalError(c, err)
		return
	}

	out := make([]leaderboardEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, leaderboardEntry{Username: r.UserName, TotalScore: r.TotalScore, RoundsPlayed: r.RoundsPlayed})
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) me(c *gin.Context) {
	u := currentUser(c)
	c.JSON(http.StatusOK, leaderboardEntry{Username: u.UserName, TotalScore: u.TotalScore, RoundsPlayed: u.RoundsPlayed})
}

func (s *HTTPServer) debug(c *gin.Context) {
	names, err := s.game.CachedImages(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, debugResponse{CacheFiles: names})
}

// Package httpapi is the public JSON API of the game server, built on gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/logging"
	"github.com/dmitrijs2005/streetsmarts/internal/server/imagecache"
	"github.com/dmitrijs2005/streetsmarts/internal/server/models"
	"github.com/dmitrijs2005/streetsmarts/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is the account API the handlers depend on.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// GameService is the gameplay API the handlers depend on.
type GameService interface {
	RandomLocation(ctx context.Context) (*services.RoundLocation, error)
	SubmitGuess(ctx context.Context, g models.Guess) (*models.GuessResult, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	CachedImages(ctx context.Context) ([]string, error)
}

type HTTPServer struct {
	address  string
	users    UserService
	game     GameService
	logger   logging.Logger
	cacheDir string
}

// NewHTTPServer builds the server. cacheDir, when set, is served under
// /cache/; leave it empty when images live in object storage.
func NewHTTPServer(address string, l logging.Logger, us UserService, gs GameService, cacheDir string) *HTTPServer {
	return &HTTPServer{
		address:  address,
		users:    us,
		game:     gs,
		logger:   l.With("module", "http_server"),
		cacheDir: cacheDir,
	}
}

// Router wires middleware and routes.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.CustomRecovery(s.recoverPanic))

	r.POST("/register", s.register)
	r.POST("/token", s.token)
	r.GET("/leaderboard", s.leaderboard)
	r.GET("/debug", s.debug)

	authed := r.Group("/", s.requireAuth())
	authed.GET("/random_location", s.randomLocation)
	authed.POST("/submit_guess", s.submitGuess)
	authed.GET("/me", s.me)

	if s.cacheDir != "" {
		r.Static(imagecache.FilePathPrefix, s.cacheDir)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

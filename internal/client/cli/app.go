package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/client/client"
	"github.com/dmitrijs2005/streetsmarts/internal/client/config"
	"github.com/dmitrijs2005/streetsmarts/internal/client/repositories/history"
	"github.com/dmitrijs2005/streetsmarts/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	gameService services.GameService
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.HistoryDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing history database: %w", err)
	}

	apiClient, err := client.NewStreetSmartsClient(c.ServerURL, c.HealthAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient),
		gameService: services.NewGameService(apiClient, history.NewSQLiteRepository(db)),
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		fmt.Fprintf(a.out, "\nServer is %s\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Run blocks in the REPL and releases the client and the database after.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentUser() != ""
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

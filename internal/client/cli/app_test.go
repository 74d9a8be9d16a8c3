package cli

import (
	"bufio"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/streetsmarts/internal/client/config"
)

func TestSetMode_ChangesAndReportsOnce(t *testing.T) {
	a, out := newTestApp(t, &fakeAuth{}, &fakeGame{}, readerFromLines())

	a.setMode(ModeOnline)
	assert.Equal(t, ModeOnline, a.Mode())
	assert.Contains(t, out.String(), "Server is online")

	out.Reset()
	a.setMode(ModeOnline)
	assert.Empty(t, out.String())

	a.setMode(ModeOffline)
	assert.Equal(t, ModeOffline, a.Mode())
	assert.Contains(t, out.String(), "Server is offline")
}

func TestGetStatus(t *testing.T) {
	auth := &fakeAuth{}
	a, _ := newTestApp(t, auth, &fakeGame{}, readerFromLines())

	assert.Equal(t, "", a.getStatus())

	a.setMode(ModeOnline)
	assert.Equal(t, " (online)", a.getStatus())

	auth.user = "alice"
	assert.Equal(t, " (alice online)", a.getStatus())
}

func TestCheckOnline(t *testing.T) {
	auth := &fakeAuth{pingErr: errors.New("down")}
	a, _ := newTestApp(t, auth, &fakeGame{}, readerFromLines())

	a.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, a.Mode())

	auth.pingErr = nil
	a.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, a.Mode())
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	a, _ := newTestApp(t, &fakeAuth{}, &fakeGame{}, readerFromLines())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_ExitsAndCloses(t *testing.T) {
	capturePrints(t)
	auth := &fakeAuth{}
	a, out := newTestApp(t, auth, &fakeGame{}, bufio.NewReader(strings.NewReader("exit\n")))
	a.config.OnlineCheckInterval = time.Hour

	a.Run(context.Background())

	assert.True(t, auth.closed)
	assert.Contains(t, out.String(), "Welcome to Street Smarts!")
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.HistoryDSN = filepath.Join(t.TempDir(), "history.db")
	cfg.HealthAddr = ""

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.db)
	assert.False(t, a.isLoggedIn())

	games, err := a.gameService.History(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, games)

	require.NoError(t, a.authService.Close(context.Background()))
	require.NoError(t, a.db.Close())
}

func TestNewApp_Errors(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.HistoryDSN = filepath.Join(t.TempDir(), "missing", "history.db")

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)

	cfg.HistoryDSN = filepath.Join(t.TempDir(), "history.db")
	cfg.ServerURL = "not a url"
	_, err = NewApp(context.Background(), cfg)
	assert.Error(t, err)
}

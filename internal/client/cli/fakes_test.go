package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/streetsmarts/internal/client/config"
	"github.com/dmitrijs2005/streetsmarts/internal/client/game"
	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
	"github.com/dmitrijs2005/streetsmarts/internal/client/services"
)

type fakeAuth struct {
	user string

	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error

	logoutCalls int
	pingErr     error
	closed      bool
}

func (f *fakeAuth) Register(_ context.Context, u string, p []byte) error {
	f.regUser, f.regPass = u, append([]byte(nil), p...)
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, u string, p []byte) error {
	f.loginUser, f.loginPass = u, append([]byte(nil), p...)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user = u
	return nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	if f.user == "" {
		return services.ErrNotLoggedIn
	}
	f.user = ""
	return nil
}

func (f *fakeAuth) CurrentUser() string         { return f.user }
func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }

type fakeGame struct {
	locations []models.Location
	next      int
	locErr    error

	points   int
	guesses  [][2]float64
	guessErr error

	finished  []models.GameRecord
	finishErr error

	board    []models.LeaderboardEntry
	boardErr error
	profile  *models.Profile
	profErr  error
	best     int64
	history  []models.GameRecord
}

func (f *fakeGame) NextLocation(_ context.Context, s *game.Session) (*models.Location, error) {
	if f.locErr != nil {
		return nil, f.locErr
	}
	loc := f.locations[f.next%len(f.locations)]
	f.next++
	return &loc, nil
}

func (f *fakeGame) Guess(_ context.Context, s *game.Session, loc models.Location, lat, lng float64) (*models.GuessResult, error) {
	if f.guessErr != nil {
		return nil, f.guessErr
	}
	f.guesses = append(f.guesses, [2]float64{lat, lng})
	res := models.GuessResult{DistanceMeters: 1500, PointsAwarded: f.points}
	if err := s.Record(loc, res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (f *fakeGame) Finish(_ context.Context, u string, s *game.Session) (models.GameRecord, error) {
	rec := models.GameRecord{Username: u, Rounds: s.Summary().Played, Points: s.Total()}
	if f.finishErr != nil {
		return rec, f.finishErr
	}
	f.finished = append(f.finished, rec)
	return rec, nil
}

func (f *fakeGame) History(context.Context, string, int) ([]models.GameRecord, error) {
	return f.history, nil
}

func (f *fakeGame) BestGame(context.Context, string) (int64, error) { return f.best, nil }

func (f *fakeGame) Leaderboard(context.Context, int) ([]models.LeaderboardEntry, error) {
	return f.board, f.boardErr
}

func (f *fakeGame) Me(context.Context) (*models.Profile, error) { return f.profile, f.profErr }

func (f *fakeGame) ImageLink(loc models.Location) string {
	return loc.ImageLink("http://server")
}

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// newTestApp builds an App whose prompts read from input and whose output
// is collected in the returned buffer. Password reads take a plain line.
func newTestApp(t *testing.T, auth *fakeAuth, g *fakeGame, input *bufio.Reader) (*App, *bytes.Buffer) {
	t.Helper()
	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{
		config:      cfg,
		authService: auth,
		gameService: g,
		reader:      input,
		out:         &out,
	}, &out
}


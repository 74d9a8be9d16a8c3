package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	baseURL string

	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginErr  error
	loggedOut bool

	location    *models.Location
	locationErr error

	guesses  []int64
	guessRes *models.GuessResult
	guessErr error

	board      []models.LeaderboardEntry
	boardLimit int
	profile    *models.Profile

	pingErr  error
	closed   bool
	closeErr error
}

func (f *fakeClient) Close() error    { f.closed = true; return f.closeErr }
func (f *fakeClient) BaseURL() string { return f.baseURL }

func (f *fakeClient) Register(_ context.Context, u string, p []byte) error {
	f.regUser, f.regPass = u, append([]byte(nil), p...)
	return f.regErr
}

func (f *fakeClient) Login(_ context.Context, u string, _ []byte) error {
	f.loginUser = u
	return f.loginErr
}

func (f *fakeClient) Logout() { f.loggedOut = true }

func (f *fakeClient) RandomLocation(context.Context) (*models.Location, error) {
	return f.location, f.locationErr
}

func (f *fakeClient) SubmitGuess(_ context.Context, id int64, _, _ float64) (*models.GuessResult, error) {
	f.guesses = append(f.guesses, id)
	if f.guessErr != nil {
		return nil, f.guessErr
	}
	r := *f.guessRes
	return &r, nil
}

func (f *fakeClient) Leaderboard(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.boardLimit = limit
	return f.board, nil
}

func (f *fakeClient) Me(context.Context) (*models.Profile, error) { return f.profile, nil }
func (f *fakeClient) Ping(context.Context) error                  { return f.pingErr }

// memHistory implements history.Repository in memory.
type memHistory struct {
	games  []models.GameRecord
	addErr error
}

func (m *memHistory) Add(_ context.Context, g models.GameRecord) (models.GameRecord, error) {
	if m.addErr != nil {
		return g, m.addErr
	}
	g.ID = int64(len(m.games) + 1)
	m.games = append(m.games, g)
	return g, nil
}

func (m *memHistory) ListByUser(_ context.Context, u string, limit int) ([]models.GameRecord, error) {
	var out []models.GameRecord
	for i := len(m.games) - 1; i >= 0 && len(out) < limit; i-- {
		if m.games[i].Username == u {
			out = append(out, m.games[i])
		}
	}
	return out, nil
}

func (m *memHistory) Best(_ context.Context, u string) (int64, error) {
	var best int64
	for _, g := range m.games {
		if g.Username == u && g.Points > best {
			best = g.Points
		}
	}
	return best, nil
}

var errBoom = errors.New("boom")

// Package game keeps the state of one game on the client: how many rounds
// it has, which have been played and the points collected so far. The
// server stays stateless per guess; ending a game is decided here.
package game

import (
	"errors"

	"github.com/dmitrijs2005/streetsmarts/internal/client/models"
)

var ErrGameOver = errors.New("game over")

// Session is not safe for concurrent use.
type Session struct {
	rounds  int
	results []models.RoundResult
	total   int64
}

// NewSession starts a game of the given number of rounds. Values below one
// are treated as one.
func NewSession(rounds int) *Session {
	if rounds < 1 {
		rounds = 1
	}
	return &Session{rounds: rounds, results: make([]models.RoundResult, 0, rounds)}
}

// Round returns the 1-based number of the round being played.
func (s *Session) Round() int {
	if s.Over() {
		return s.rounds
	}
	return len(s.results) + 1
}

func (s *Session) Rounds() int { return s.rounds }

// Record stores the outcome of the current round and advances.
func (s *Session) Record(loc models.Location, res models.GuessResult) error {
	if s.Over() {
		return ErrGameOver
	}
	s.results = append(s.results, models.RoundResult{Location: loc, Result: res})
	s.total += int64(res.PointsAwarded)
	return nil
}

func (s *Session) Over() bool { return len(s.results) >= s.rounds }

func (s *Session) Total() int64 { return s.total }

// Summary describes a game for the final tally.
type Summary struct {
	Rounds  int
	Played  int
	Total   int64
	Best    int
	Results []models.RoundResult
}

func (s *Session) Summary() Summary {
	sum := Summary{
		Rounds:  s.rounds,
		Played:  len(s.results),
		Total:   s.total,
		Results: append([]models.RoundResult(nil), s.results...),
	}
	for _, r := range s.results {
		if r.Result.PointsAwarded > sum.Best {
			sum.Best = r.Result.PointsAwarded
		}
	}
	return sum
}

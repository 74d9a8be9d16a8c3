package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/streetsmarts/internal/client/client"
	"github.com/dmitrijs2005/streetsmarts/internal/client/game"
	"github.com/dmitrijs2005/streetsmarts/internal/client/services"
	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

// Play runs one full game: RoundsPerGame rounds, then the final tally and
// the leaderboard. Any API error ends the game early.
func (a *App) Play(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return services.ErrNotLoggedIn
	}

	s := game.NewSession(a.config.RoundsPerGame)
	for !s.Over() {
		if err := a.playRound(ctx, s); err != nil {
			a.reportError(err)
			return err
		}
	}

	a.printSummary(s.Summary())

	if _, err := a.gameService.Finish(ctx, a.authService.CurrentUser(), s); err != nil {
		fmt.Fprintf(a.out, "Could not save the game locally: %v\n", err)
	}

	return a.printLeaderboard(ctx, services.LeaderboardSize)
}

func (a *App) playRound(ctx context.Context, s *game.Session) error {
	fmt.Fprintf(a.out, "\n=== Round %d of %d ===\n", s.Round(), s.Rounds())

	loc, err := a.gameService.NextLocation(ctx, s)
	if err != nil {
		return err
	}

	if loc.ImageError != "" {
		fmt.Fprintf(a.out, "No Street View image for this round (%s). Guess anyway!\n", loc.ImageError)
	} else {
		fmt.Fprintf(a.out, "Street View: %s\n", a.gameService.ImageLink(*loc))
	}

	lat, lng, err := a.readGuess()
	if err != nil {
		return err
	}

	res, err := a.gameService.Guess(ctx, s, *loc, lat, lng)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "It was %s. Your guess was %s away: %d points.\n",
		loc.Name, formatDistance(res.DistanceMeters), res.PointsAwarded)
	return nil
}

// readGuess prompts until the player enters valid coordinates or input ends.
func (a *App) readGuess() (float64, float64, error) {
	for {
		text, err := getSimpleText(a.reader, "Your guess as lat,lng (e.g. 48.85,2.35)", a.out)
		if err != nil {
			return 0, 0, err
		}
		lat, lng, err := ParseCoordinates(text)
		if err == nil {
			return lat, lng, nil
		}
		fmt.Fprintf(a.out, "%v\n", err)
	}
}

func (a *App) printSummary(sum game.Summary) {
	fmt.Fprintln(a.out, "\n=== Game over ===")
	for i, r := range sum.Results {
		fmt.Fprintf(a.out, "%d. %-20s %10s %5d pts\n",
			i+1, r.Location.Name, formatDistance(r.Result.DistanceMeters), r.Result.PointsAwarded)
	}
	fmt.Fprintf(a.out, "Total: %d points in %d rounds (best round %d)\n", sum.Total, sum.Played, sum.Best)
}

func (a *App) reportError(err error) {
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(a.out, "\nInput closed, game aborted.")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	case errors.Is(err, common.ErrorUnauthorized):
		fmt.Fprintln(a.out, "Your session has expired, please log in again.")
		_ = a.authService.Logout(context.Background())
	default:
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
}

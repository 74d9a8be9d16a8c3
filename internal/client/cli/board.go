package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/client/services"
)

const historySize = 10

func (a *App) Leaderboard(ctx context.Context) error {
	if err := a.printLeaderboard(ctx, services.LeaderboardSize); err != nil {
		a.reportError(err)
		return err
	}
	return nil
}

func (a *App) printLeaderboard(ctx context.Context, limit int) error {
	entries, err := a.gameService.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\n=== Leaderboard ===")
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No scores yet.")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(a.out, "%2d. %-20s %8d pts  (%d rounds)\n", i+1, e.Username, e.TotalScore, e.RoundsPlayed)
	}
	return nil
}

// Me shows the server-side profile and the best locally recorded game.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return services.ErrNotLoggedIn
	}

	p, err := a.gameService.Me(ctx)
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintf(a.out, "%s: %d points over %d rounds\n", p.Username, p.TotalScore, p.RoundsPlayed)

	if best, err := a.gameService.BestGame(ctx, p.Username); err == nil && best > 0 {
		fmt.Fprintf(a.out, "Best game on this machine: %d points\n", best)
	}
	return nil
}

// History lists the player's recent games stored on this machine.
func (a *App) History(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return services.ErrNotLoggedIn
	}

	games, err := a.gameService.History(ctx, a.authService.CurrentUser(), historySize)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(a.out, "No games played on this machine yet.")
		return nil
	}
	for _, g := range games {
		fmt.Fprintf(a.out, "%s  %d rounds  %d pts\n", g.FinishedAt.Local().Format("2006-01-02 15:04"), g.Rounds, g.Points)
	}
	return nil
}

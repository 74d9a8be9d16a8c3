package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if u := a.authService.CurrentUser(); u != "" {
		parts = append(parts, u)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, " "))
}

// Root prints the banner, starts the online watcher and runs the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Street Smarts! Guess where in the world you are. (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

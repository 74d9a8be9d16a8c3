package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Play(ctx context.Context) error
	Leaderboard(ctx context.Context) error
	Me(ctx context.Context) error
	History(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until the
// input ends or the user types "exit" or "quit".
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create an account
//	  - login                authenticate
//	  - leaderboard | lb     top 10 players
//	  - exit | quit          leave the program
//
//	Logged in, additionally:
//	  - play                 play a game
//	  - me                   own score
//	  - history              games played on this machine
//	  - logout               log out
//
// Command handlers print their own errors, so the loop ignores them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("streetsmarts%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: play, leaderboard, me, history, logout, exit")
			} else {
				printlnFn("Available commands: register, login, leaderboard, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "play":
			_ = a.Play(ctx)

		case "leaderboard", "lb":
			_ = a.Leaderboard(ctx)

		case "me":
			_ = a.Me(ctx)

		case "history":
			_ = a.History(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

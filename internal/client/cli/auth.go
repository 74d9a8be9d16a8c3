package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", a.authService.CurrentUser())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

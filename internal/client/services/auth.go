// Package services contains application services for the Street Smarts
// client. This file defines the account service: register, login, logout
// and the server liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/streetsmarts/internal/client/client"
	"github.com/dmitrijs2005/streetsmarts/internal/common"
)

var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Register: create a new user on the server.
//   - Login: obtain a bearer token and remember the username.
//   - Logout: forget the token and username.
//   - CurrentUser: the logged-in username, "" if none.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	CurrentUser() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client

	mu       sync.RWMutex
	username string
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", common.ErrValidation)
	}
	return a.client.Register(ctx, username, password)
}

// Login authenticates against the server. On success the client carries the
// token for every later call.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if err := a.client.Login(ctx, username, password); err != nil {
		return err
	}

	a.mu.Lock()
	a.username = username
	a.mu.Unlock()
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.username == "" {
		return ErrNotLoggedIn
	}
	a.client.Logout()
	a.username = ""
	return nil
}

func (a *authService) CurrentUser() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.username
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

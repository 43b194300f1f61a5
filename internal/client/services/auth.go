// Package services contains the CLI's application services. They sit
// between the REPL and the broker client: auth drives the two-step
// register and login flows, keys drives the ledger and encrypted blobs.
package services

import (
	"context"

	"github.com/dmitrijs2005/gophkms/internal/client/client"
)

// AuthService covers account and session operations. Every step of the
// register and login flows returns the server's status string.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (string, error)
	ConfirmRegistration(ctx context.Context, email, otp string) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	ConfirmLogin(ctx context.Context, email, otp string) (string, error)
	Logout(ctx context.Context) error
	LoggedIn() bool
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
}

func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (string, error) {
	return a.client.Register(ctx, email, string(password))
}

func (a *authService) ConfirmRegistration(ctx context.Context, email, otp string) (string, error) {
	return a.client.ConfirmRegistration(ctx, email, otp)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (string, error) {
	return a.client.Login(ctx, email, string(password))
}

func (a *authService) ConfirmLogin(ctx context.Context, email, otp string) (string, error) {
	return a.client.ConfirmLogin(ctx, email, otp)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *authService) LoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

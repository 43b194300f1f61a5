package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophkms/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyInput = errors.New("empty input")

func (a *App) rememberEmail(email string) {
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
}

func (a *App) currentEmail() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.email
}

func (a *App) prompt(text string) (string, error) {
	v, err := getSimpleText(a.reader, text, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", errEmptyInput
	}
	return v, nil
}

// credentials prompts for email and password. The password must be wiped
// by the caller.
func (a *App) credentials() (string, []byte, error) {
	email, err := a.prompt("Enter email")
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return strings.ToLower(email), password, nil
}

// otpArgs takes the code from args or prompts for it. The email is the one
// used by the preceding register or login step, or prompted for.
func (a *App) otpArgs(args []string) (string, string, error) {
	email := a.currentEmail()
	if email == "" {
		v, err := a.prompt("Enter email")
		if err != nil {
			return "", "", err
		}
		email = strings.ToLower(v)
	}

	if len(args) > 0 {
		return email, args[0], nil
	}
	code, err := a.prompt("Enter the code from the email")
	if err != nil {
		return "", "", err
	}
	return email, code, nil
}

// Register starts registration and mails a code to the given address.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	status, err := a.authService.Register(ctx, email, password)
	if err != nil {
		return err
	}
	a.rememberEmail(email)

	fmt.Fprintf(a.out, "%s: check %s for a verification code, then run confirm-register\n", status, email)
	return nil
}

func (a *App) ConfirmRegistration(ctx context.Context, args []string) error {
	email, code, err := a.otpArgs(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	status, err := a.authService.ConfirmRegistration(ctx, email, code)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, status)
	return nil
}

// Login checks the password and mails a login code.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	status, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.rememberEmail(email)

	fmt.Fprintf(a.out, "%s: check %s for a login code, then run confirm-login\n", status, email)
	return nil
}

func (a *App) ConfirmLogin(ctx context.Context, args []string) error {
	email, code, err := a.otpArgs(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	status, err := a.authService.ConfirmLogin(ctx, email, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: logged in as %s\n", status, email)
	return nil
}

// Logout revokes the session. The local session is gone even on error.
func (a *App) Logout(ctx context.Context, _ []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

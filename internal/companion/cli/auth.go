package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/magielabs/companion/internal/companion/identity"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account via the backend.
//
// When the backend issues tokens straight away the new session is adopted as
// if the user had logged in. When email confirmation is pending no session
// exists yet and the user is told to check their inbox.
func (a *App) Register(ctx context.Context) error {
	if a.auth == nil {
		printlnFn("No backend configured, running local-only.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.auth.SignUp(ctx, email, string(password))
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}
	if sess == nil {
		printlnFn("Account created. Check your email to confirm, then login.")
		return nil
	}

	printlnFn("Success!")
	return a.adoptSession(ctx, sess)
}

// Login prompts the user for credentials and tries to authenticate. On
// success the backend copy of the user's data replaces the local cache.
// Failure leaves the current session and local data untouched.
func (a *App) Login(ctx context.Context) error {
	if a.auth == nil {
		printlnFn("No backend configured, running local-only.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	sess, err := a.auth.SignInWithPassword(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn("Login successful")
	a.setMode(ModeOnline)
	return a.adoptSession(ctx, sess)
}

// adoptSession installs the new session and applies the data effect the
// identity transition calls for. Switching accounts discards the previous
// user's local data before the fresh load.
func (a *App) adoptSession(ctx context.Context, sess *identity.Session) error {
	old := a.session
	if old.Active() && sess.Active() && old.UserID != sess.UserID {
		if err := a.data.SignOut(ctx, old); err != nil {
			return err
		}
	}

	effect := identity.TransitionEffect(old, sess)
	a.session = sess

	switch effect {
	case identity.EffectLoad:
		return a.data.LoadAll(ctx, sess)
	case identity.EffectDiscard:
		return a.data.SignOut(ctx, old)
	default:
		return nil
	}
}

// Logout signs the user out and discards every locally cached record.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}

	old := a.session
	a.session = nil
	if err := a.data.SignOut(ctx, old); err != nil {
		return err
	}
	printlnFn("Logged out, local data cleared.")
	return nil
}

// Recover asks the backend to send a password reset email.
func (a *App) Recover(ctx context.Context) error {
	if a.auth == nil {
		printlnFn("No backend configured, running local-only.")
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.RequestPasswordRecovery(ctx, email); err != nil {
		printlnFn("Recovery request failed:", err.Error())
		return err
	}
	printlnFn("Check your email for the reset link.")
	return nil
}

// Whoami prints the signed-in account.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s (%s)", a.session.Email, a.session.UserID))
	return nil
}

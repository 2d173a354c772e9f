package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"soundhive/internal/session"
	"soundhive/internal/shared"
)

// AuthLogin signs in with email and password and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("signing in", "email", email)

	s, err := r.auth.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	r.writePlain("✓ Signed in as %s <%s>\n", s.Username, s.Email)
	return nil
}

// AuthSignup registers a new account and signs in.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("registering account", "email", email)

	if err := r.auth.SignUp(ctx, username, email, password); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	if _, err := r.auth.SignIn(ctx, email, password); err != nil {
		return fmt.Errorf("account created but sign-in failed: %w", err)
	}

	r.writePlain("✓ Account created, signed in as %s\n", username)
	return nil
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.auth.SignOut(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami shows the signed-in user, or a guest greeting when no session exists.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	s, err := r.auth.Current()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	r.writePlain("%s\n", session.Greeting(s, time.Now()))
	if s != nil {
		r.writePlain("Email: %s\n", s.Email)
	}
	return nil
}

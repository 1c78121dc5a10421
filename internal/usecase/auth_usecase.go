// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"gachigage/internal/domain/entity"
)

// SignupInput carries the values collected by the signup wizard.
type SignupInput struct {
	Identifier     string
	Password       string
	Nickname       string
	Sido           string
	Gugun          string
	MarketingAgree *bool
}

// AuthUsecase defines the interface for account and session operations.
type AuthUsecase interface {
	// CheckIdentifier reports whether the identifier is still available.
	CheckIdentifier(ctx context.Context, identifier string) (bool, error)

	// Signup validates the wizard input and creates the account upstream.
	Signup(ctx context.Context, input SignupInput) error

	// Login exchanges credentials for a token pair and persists the session.
	Login(ctx context.Context, identifier, password string) (*entity.Session, error)

	// Logout clears the local session. No upstream call is made.
	Logout(ctx context.Context) error

	// Session returns the persisted session, or ErrAuthRequired when none exists.
	Session(ctx context.Context) (*entity.Session, error)
}

// Package repository defines the interfaces for the local persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gachigage/internal/domain/entity"
)

// ErrSessionNotFound is returned when no login session is persisted.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists the single login session of this client. The
// session survives restarts, so hydration is a plain read.
type SessionRepository interface {
	// Find retrieves the persisted session, if any.
	Find(ctx context.Context) (*entity.Session, error)

	// Save stores the session, replacing any previous one.
	Save(ctx context.Context, session *entity.Session) error

	// Clear removes the persisted session.
	Clear(ctx context.Context) error
}

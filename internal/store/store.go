package store

import (
	"context"
	"errors"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

// Expected, user-correctable failures. Handlers map these to 4xx
// responses; anything else is a storage fault.
var (
	ErrDuplicateEmail  = errors.New("an account with this email already exists")
	ErrDuplicateMobile = errors.New("an account with this mobile number already exists")
	ErrUserNotFound    = errors.New("user not found")
)

// AdminSeed is the administrator record created on first run. The
// password arrives already hashed; the store never sees a plaintext
// secret.
type AdminSeed struct {
	Email        string
	Mobile       string
	PasswordHash string
}

// Directory is the durable table of user records. The auth service is
// written against this interface so the backing can move to another
// service without changing auth semantics.
type Directory interface {
	// Initialize ensures exactly one admin record exists. Idempotent;
	// called on every startup.
	Initialize(ctx context.Context) error

	// CreateUser adds a farmer record with a fresh id. Fails with
	// ErrDuplicateEmail or ErrDuplicateMobile.
	CreateUser(ctx context.Context, email, mobile, passwordHash string) (*models.User, error)

	// FindByEmail returns the record for an exact email match, or
	// ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByMobile returns the record for an exact mobile match, or
	// ErrUserNotFound. Mobile is the sole recovery key.
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)

	// UpdatePassword overwrites the stored hash for the record matching
	// mobile, or returns ErrUserNotFound.
	UpdatePassword(ctx context.Context, mobile, passwordHash string) error

	// ListByRole returns all records with the given role in insertion
	// order.
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

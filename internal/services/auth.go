package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/paddyguard/paddyguard-backend/internal/models"
	"github.com/paddyguard/paddyguard-backend/internal/store"
	"github.com/paddyguard/paddyguard-backend/pkg/utils"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so a caller cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingFields      = errors.New("all fields are required")
)

const minPasswordLength = 8

// AuthService orchestrates login, registration, and password recovery
// against the user directory. Expected failures come back as sentinel
// errors, never as panics or opaque 500s.
type AuthService struct {
	dir      store.Directory
	sessions *SessionService
	recovery *RecoveryService
	notifier Notifier
}

func NewAuthService(dir store.Directory, sessions *SessionService, recovery *RecoveryService, notifier Notifier) *AuthService {
	return &AuthService{dir: dir, sessions: sessions, recovery: recovery, notifier: notifier}
}

// Login verifies credentials and establishes a session. The returned
// identity is sanitized; the session is left untouched on failure.
func (a *AuthService) Login(ctx context.Context, email, password string) (models.Identity, string, error) {
	if email == "" || password == "" {
		return models.Identity{}, "", ErrInvalidCredentials
	}

	user, err := a.dir.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Identity{}, "", ErrInvalidCredentials
	} else if err != nil {
		return models.Identity{}, "", err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.Identity{}, "", ErrInvalidCredentials
	}

	identity := user.Sanitize()
	token, err := a.sessions.Create(ctx, identity)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("failed to create session: %w", err)
	}
	return identity, token, nil
}

// Logout clears the session. Idempotent.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	return a.sessions.Invalidate(ctx, token)
}

// Register creates a farmer account. Password rules are checked before
// the directory is touched; uniqueness is the directory's job.
func (a *AuthService) Register(ctx context.Context, email, mobile, password, confirm string) error {
	if email == "" || mobile == "" || password == "" {
		return ErrMissingFields
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = a.dir.CreateUser(ctx, email, mobile, hash)
	return err
}

// RequestRecovery starts the reset flow for a mobile number. The
// generated code travels through the notifier only. Unknown mobiles
// yield store.ErrUserNotFound and no challenge.
func (a *AuthService) RequestRecovery(ctx context.Context, mobile string) error {
	user, err := a.dir.FindByMobile(ctx, mobile)
	if err != nil {
		return err
	}

	code, err := a.recovery.Issue(ctx, user.Mobile)
	if err != nil {
		return fmt.Errorf("failed to issue recovery code: %w", err)
	}
	return a.notifier.SendRecoveryCode(ctx, user.Mobile, code)
}

// VerifyRecoveryCode checks the submitted code and, on success, returns
// a reset token authorizing the final step. The directory is never
// touched here.
func (a *AuthService) VerifyRecoveryCode(ctx context.Context, mobile, code string) (string, error) {
	return a.recovery.Verify(ctx, mobile, code)
}

// ResetPassword completes the flow: it requires the reset token issued
// by VerifyRecoveryCode, applies the same password rules as Register,
// and invalidates any live session for the account. Challenge state is
// discarded whatever the outcome.
func (a *AuthService) ResetPassword(ctx context.Context, mobile, resetToken, newPassword, confirm string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	if err := a.recovery.Consume(ctx, mobile, resetToken); err != nil {
		return err
	}
	defer a.recovery.Clear(ctx, mobile)

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.dir.UpdatePassword(ctx, mobile, hash); err != nil {
		return err
	}

	// Old sessions must not survive a password change.
	if user, err := a.dir.FindByMobile(ctx, mobile); err == nil {
		a.sessions.InvalidateUser(ctx, user.ID.String())
	}
	return nil
}

package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	recovery := NewRecoveryService(newTestRedis(t))

	code, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), code)

	resetToken, err := recovery.Verify(ctx, "5551234567", code)
	require.NoError(t, err)
	assert.NotEmpty(t, resetToken)

	// The challenge is consumed; the same code no longer verifies.
	_, err = recovery.Verify(ctx, "5551234567", code)
	assert.ErrorIs(t, err, ErrInvalidRecoveryCode)
}

func TestRecoveryWrongCodeAllowsRetry(t *testing.T) {
	ctx := context.Background()
	recovery := NewRecoveryService(newTestRedis(t))

	code, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)

	_, err = recovery.Verify(ctx, "5551234567", "wrong")
	assert.ErrorIs(t, err, ErrInvalidRecoveryCode)

	// The challenge stays active; the correct code still works.
	resetToken, err := recovery.Verify(ctx, "5551234567", code)
	require.NoError(t, err)
	assert.NotEmpty(t, resetToken)
}

func TestRecoveryAttemptCap(t *testing.T) {
	ctx := context.Background()
	recovery := NewRecoveryService(newTestRedis(t))

	code, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)

	var lastErr error
	for i := 0; i < maxVerifyAttempts; i++ {
		_, lastErr = recovery.Verify(ctx, "5551234567", "nope")
	}
	assert.ErrorIs(t, lastErr, ErrTooManyAttempts)

	// The challenge is gone; even the right code fails now.
	_, err = recovery.Verify(ctx, "5551234567", code)
	assert.ErrorIs(t, err, ErrInvalidRecoveryCode)
}

func TestRecoveryNewIssueReplacesChallenge(t *testing.T) {
	ctx := context.Background()
	recovery := NewRecoveryService(newTestRedis(t))

	first, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)
	second, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)

	if first != second {
		_, err = recovery.Verify(ctx, "5551234567", first)
		assert.ErrorIs(t, err, ErrInvalidRecoveryCode)
	}
	_, err = recovery.Verify(ctx, "5551234567", second)
	assert.NoError(t, err)
}

func TestRecoveryConsumeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	recovery := NewRecoveryService(newTestRedis(t))

	code, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)
	resetToken, err := recovery.Verify(ctx, "5551234567", code)
	require.NoError(t, err)

	require.NoError(t, recovery.Consume(ctx, "5551234567", resetToken))
	assert.ErrorIs(t, recovery.Consume(ctx, "5551234567", resetToken), ErrResetNotAuthorized)
}

func TestRecoveryConsumeRejectsWrongToken(t *testing.T) {
	ctx := context.Background()
	recovery := NewRecoveryService(newTestRedis(t))

	assert.ErrorIs(t, recovery.Consume(ctx, "5551234567", "bogus"), ErrResetNotAuthorized)

	code, err := recovery.Issue(ctx, "5551234567")
	require.NoError(t, err)
	_, err = recovery.Verify(ctx, "5551234567", code)
	require.NoError(t, err)

	assert.ErrorIs(t, recovery.Consume(ctx, "5551234567", "bogus"), ErrResetNotAuthorized)
	assert.ErrorIs(t, recovery.Consume(ctx, "5551234567", ""), ErrResetNotAuthorized)
}

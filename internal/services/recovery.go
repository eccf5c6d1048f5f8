package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidRecoveryCode = errors.New("invalid verification code")
	ErrTooManyAttempts     = errors.New("too many incorrect attempts, request a new code")
	ErrResetNotAuthorized  = errors.New("password reset not authorized")
)

const (
	challengeTTL      = 10 * time.Minute
	resetTokenTTL     = 10 * time.Minute
	maxVerifyAttempts = 5
	codeDigits        = 4

	challengeKeyPrefix = "recovery:code:"
	resetKeyPrefix     = "recovery:reset:"
)

type recoveryChallenge struct {
	Code     string `json:"code"`
	Attempts int    `json:"attempts"`
}

// RecoveryService manages the one-time-code exchange that authorizes a
// password reset. Challenges are keyed by mobile; issuing a new one
// replaces any prior challenge. Codes expire and failed attempts are
// capped.
type RecoveryService struct {
	rdb *redis.Client
}

func NewRecoveryService(rdb *redis.Client) *RecoveryService {
	return &RecoveryService{rdb: rdb}
}

// Issue generates a fresh code for mobile and stores it as the active
// challenge. The code goes to the notifier for out-of-band delivery; it
// is never handed back through the HTTP response.
func (s *RecoveryService) Issue(ctx context.Context, mobile string) (string, error) {
	code, err := generateCode(codeDigits)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(recoveryChallenge{Code: code})
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, challengeKeyPrefix+mobile, payload, challengeTTL).Err(); err != nil {
		return "", err
	}

	// A new challenge voids any reset authorization from an earlier
	// flow.
	s.rdb.Del(ctx, resetKeyPrefix+mobile)

	return code, nil
}

// Verify checks a submitted code against the active challenge. On a
// match the challenge is consumed and a reset token authorizing the
// final step is returned. On a mismatch the challenge stays active so
// the user can retry, up to maxVerifyAttempts.
func (s *RecoveryService) Verify(ctx context.Context, mobile, code string) (string, error) {
	key := challengeKeyPrefix + mobile
	payload, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", ErrInvalidRecoveryCode
	}

	var challenge recoveryChallenge
	if err := json.Unmarshal([]byte(payload), &challenge); err != nil {
		s.rdb.Del(ctx, key)
		return "", ErrInvalidRecoveryCode
	}

	if code == "" || challenge.Code != code {
		challenge.Attempts++
		if challenge.Attempts >= maxVerifyAttempts {
			s.rdb.Del(ctx, key)
			return "", ErrTooManyAttempts
		}
		updated, err := json.Marshal(challenge)
		if err != nil {
			return "", err
		}
		if err := s.rdb.Set(ctx, key, updated, redis.KeepTTL).Err(); err != nil {
			return "", err
		}
		return "", ErrInvalidRecoveryCode
	}

	s.rdb.Del(ctx, key)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.rdb.Set(ctx, resetKeyPrefix+mobile, token, resetTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Consume validates and discards the reset token for mobile. It
// succeeds at most once per verified challenge.
func (s *RecoveryService) Consume(ctx context.Context, mobile, token string) error {
	key := resetKeyPrefix + mobile
	stored, err := s.rdb.Get(ctx, key).Result()
	if err != nil || token == "" || stored != token {
		return ErrResetNotAuthorized
	}
	return s.rdb.Del(ctx, key).Err()
}

// Clear discards any challenge state for mobile, regardless of flow
// outcome.
func (s *RecoveryService) Clear(ctx context.Context, mobile string) {
	s.rdb.Del(ctx, challengeKeyPrefix+mobile, resetKeyPrefix+mobile)
}

func generateCode(digits int) (string, error) {
	bound := big.NewInt(1)
	for i := 0; i < digits; i++ {
		bound.Mul(bound, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

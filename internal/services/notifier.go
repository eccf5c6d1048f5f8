package services

import (
	"context"
	"log"
	"strings"
)

// Notifier delivers recovery codes to the account owner through a
// channel the backend does not control (SMS in production). The code is
// never returned to the caller that requested it.
type Notifier interface {
	SendRecoveryCode(ctx context.Context, mobile, code string) error
}

// LogNotifier writes the dispatch to the server log. Development
// stand-in for an SMS gateway.
type LogNotifier struct{}

func (LogNotifier) SendRecoveryCode(ctx context.Context, mobile, code string) error {
	log.Printf("📱 Recovery code for %s: %s", maskMobile(mobile), code)
	return nil
}

// maskMobile hides all but the last four digits.
func maskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return strings.Repeat("*", len(mobile)-4) + mobile[len(mobile)-4:]
}

// Package notify delivers order notifications to users.
//
// Notification delivery is advisory: a failed send is logged and swallowed,
// never surfaced to the caller, so a flaky topic can not fail an order that
// has already committed.
package notify

import (
	"context"
	"log/slog"

	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
)

// Notifier sends a message to a recipient identified by email address.
type Notifier interface {
	Send(ctx context.Context, email, message string)
}

// Local is the fallback Notifier used when no topic is configured. It writes
// the notification to the structured log and nothing else, which is what
// local development wants.
type Local struct{}

// NewLocal creates a log-only notifier.
func NewLocal() *Local {
	return &Local{}
}

// Send implements Notifier.
func (l *Local) Send(ctx context.Context, email, message string) {
	logger.FromContext(ctx).Info("local notification",
		slog.String("email", email),
		slog.String("message", message))
}

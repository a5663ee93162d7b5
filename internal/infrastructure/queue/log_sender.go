package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/core/domain"
)

// LogSender stands in for real email and SMS gateways by writing each
// notification to the log.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.log.Info().
		Str("medium", string(n.Medium)).
		Str("recipient", n.Recipient).
		Str("subject", n.Subject).
		Str("body", n.Body).
		Msg("notification delivered")
	return nil
}

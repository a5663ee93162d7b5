package ports

import (
	"context"

	"github.com/kapurocks/directory/internal/core/domain"
)

// Notifier delivers a message out of band. Delivery may be asynchronous.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// OneTimeCodes issues and checks the codes used by the mobile channel.
type OneTimeCodes interface {
	Issue(ctx context.Context, mobile string) error
	Verify(mobile, code string) bool
}

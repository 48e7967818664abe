package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
)

// Notification is a message for an account holder about a parcel event.
type Notification struct {
	// AccountID identifies the recipient account
	AccountID kernel.UUID

	// ParcelID references the parcel the message concerns (nil if none)
	ParcelID *kernel.UUID

	// Subject is the short headline of the message
	Subject string

	// Body is the full message text
	Body string
}

// Notifier delivers notifications to account holders. Implementations run
// outside the command transaction, after commit; a failed notification never
// rolls back a committed state change.
type Notifier interface {
	// Notify delivers the notification.
	Notify(ctx context.Context, notification Notification) error
}

package notificationrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// GormNotifier stores notifications in postgres. It implements
// ports.Notifier and uses its own connection rather than the unit of work:
// notifications are fire-and-forget and must not join command transactions.
type GormNotifier struct {
	db *gorm.DB
}

// NewGormNotifier creates a new GORM-backed notifier.
func NewGormNotifier(db *gorm.DB) *GormNotifier {
	return &GormNotifier{db: db}
}

// Notify persists the notification.
func (n *GormNotifier) Notify(ctx context.Context, notification ports.Notification) error {
	if err := notification.AccountID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("notification.AccountID", err)
	}
	if notification.Subject == "" {
		return errs.NewValueIsRequiredError("notification.Subject")
	}

	dto := fromNotification(notification, time.Now().UTC())
	return n.db.WithContext(ctx).Create(&dto).Error
}

// Package notificationrepo persists owner notifications. Messages are
// written outside the command transaction, after commit, so a delivery
// problem never affects committed state.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"

	"warehouse/internal/core/ports"
)

// NotificationDTO is a data transfer object for a stored notification.
type NotificationDTO struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid"`
	AccountID uuid.UUID  `gorm:"type:uuid;index"`
	ParcelID  *uuid.UUID `gorm:"type:uuid;index"`
	Subject   string
	Body      string
	CreatedAt time.Time
}

// TableName returns the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromNotification(notification ports.Notification, now time.Time) NotificationDTO {
	dto := NotificationDTO{
		ID:        uuid.New(),
		AccountID: notification.AccountID.Bytes(),
		Subject:   notification.Subject,
		Body:      notification.Body,
		CreatedAt: now,
	}
	if notification.ParcelID != nil {
		parcelID := notification.ParcelID.Bytes()
		dto.ParcelID = &parcelID
	}
	return dto
}

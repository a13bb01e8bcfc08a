package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Notification audiences. A user notification targets exactly one user;
// an admin notification targets every user with the admin role.
const (
	AudienceUser  = "user"
	AudienceAdmin = "admin"
)

const (
	NotificationNewComment      = "new_comment"
	NotificationNewReport       = "new_report"
	NotificationProductSold     = "product_sold"
	NotificationLessonPublished = "lesson_published"
)

var validNotificationTypes = map[string]bool{
	NotificationNewComment:      true,
	NotificationNewReport:       true,
	NotificationProductSold:     true,
	NotificationLessonPublished: true,
}

func ValidNotificationType(typ string) bool {
	return validNotificationTypes[typ]
}

type Notification struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Audience string `gorm:"column:audience;index;not null" json:"audience"`
	// UserID is nil for the admin audience.
	UserID    *uint             `gorm:"column:user_id;index" json:"userId,omitempty"`
	Type      string            `gorm:"column:type;not null" json:"type"`
	Data      datatypes.JSONMap `gorm:"column:data" json:"data"`
	Read      bool              `gorm:"column:read;default:false" json:"read"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}

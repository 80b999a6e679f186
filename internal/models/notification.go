package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationRetweet NotificationType = "retweet"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
)

type Notification struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primary_key"`
	RecipientID uuid.UUID        `json:"recipient_id" gorm:"type:uuid;not null;index"`
	SenderID    uuid.UUID        `json:"sender_id" gorm:"type:uuid;not null"`
	Type        NotificationType `json:"type" gorm:"not null"`
	TweetID     *uuid.UUID       `json:"tweet_id" gorm:"type:uuid"`
	CommentID   *uuid.UUID       `json:"comment_id" gorm:"type:uuid"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`

	Sender User `json:"sender" gorm:"foreignKey:SenderID"`
}

func (Notification) TableName() string {
	return "notifications"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type Media struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID     uuid.UUID      `json:"owner_id" gorm:"type:uuid;not null;index"`
	Filename    string         `json:"filename" gorm:"not null"`
	ContentType string         `json:"content_type"`
	MediaType   string         `json:"media_type" gorm:"not null"`
	Size        int64          `json:"size"`
	Path        string         `json:"-" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type EmotionReaction struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	TweetID    uuid.UUID      `json:"tweet_id" gorm:"type:uuid;not null;index:idx_reaction_tweet_user"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_reaction_tweet_user"`
	Emotion    string         `json:"emotion" gorm:"not null"`
	Confidence float64        `json:"confidence"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Media) TableName() string {
	return "media"
}

func (EmotionReaction) TableName() string {
	return "emotion_reactions"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tweet struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	MediaID      *uuid.UUID     `json:"media_id" gorm:"type:uuid"`
	MediaType    string         `json:"media_type"`
	Tags         []string       `json:"tags" gorm:"serializer:json;type:text"`
	LikeCount    int64          `json:"like_count" gorm:"default:0"`
	CommentCount int64          `json:"comment_count" gorm:"default:0"`
	RetweetCount int64          `json:"retweet_count" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

type Like struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_like_user_tweet"`
	TweetID   uuid.UUID      `json:"tweet_id" gorm:"type:uuid;not null;index:idx_like_user_tweet"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User  User  `json:"user" gorm:"foreignKey:UserID"`
	Tweet Tweet `json:"tweet" gorm:"foreignKey:TweetID"`
}

type Retweet struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_retweet_user_tweet"`
	TweetID   uuid.UUID      `json:"tweet_id" gorm:"type:uuid;not null;index:idx_retweet_user_tweet"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User  User  `json:"user" gorm:"foreignKey:UserID"`
	Tweet Tweet `json:"tweet" gorm:"foreignKey:TweetID"`
}

type Comment struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null"`
	TweetID   uuid.UUID      `json:"tweet_id" gorm:"type:uuid;not null;index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User  User  `json:"user" gorm:"foreignKey:UserID"`
	Tweet Tweet `json:"tweet" gorm:"foreignKey:TweetID"`
}

type Bookmark struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_bookmark_user_tweet"`
	TweetID   uuid.UUID      `json:"tweet_id" gorm:"type:uuid;not null;index:idx_bookmark_user_tweet"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User  User  `json:"user" gorm:"foreignKey:UserID"`
	Tweet Tweet `json:"tweet" gorm:"foreignKey:TweetID"`
}

type Hashtag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Tag       string    `json:"tag" gorm:"uniqueIndex;not null"`
	UseCount  int64     `json:"use_count" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

type TweetHashtag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TweetID   uuid.UUID `json:"tweet_id" gorm:"type:uuid;not null;index:idx_tweet_hashtag"`
	HashtagID uuid.UUID `json:"hashtag_id" gorm:"type:uuid;not null;index:idx_tweet_hashtag"`
	CreatedAt time.Time `json:"created_at"`
}

type Mention struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TweetID   uuid.UUID `json:"tweet_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Tweet) TableName() string {
	return "tweets"
}

func (Like) TableName() string {
	return "likes"
}

func (Retweet) TableName() string {
	return "retweets"
}

func (Comment) TableName() string {
	return "comments"
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (Hashtag) TableName() string {
	return "hashtags"
}

func (TweetHashtag) TableName() string {
	return "tweet_hashtags"
}

func (Mention) TableName() string {
	return "mentions"
}

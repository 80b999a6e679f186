package repository

import (
	"context"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

func (r *BookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, tweetID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Bookmark{}).Error; err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) Get(ctx context.Context, userID, tweetID uuid.UUID) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&bookmark).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	return &bookmark, nil
}

func (r *BookmarkRepository) GetTweetsByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Preload("User").
		Joins("JOIN bookmarks ON bookmarks.tweet_id = tweets.id").
		Where("bookmarks.user_id = ? AND bookmarks.deleted_at IS NULL", userID).
		Order("bookmarks.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get bookmarked tweets: %w", err)
	}
	return tweets, nil
}

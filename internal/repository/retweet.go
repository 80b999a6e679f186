package repository

import (
	"context"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetweetRepository struct {
	db *gorm.DB
}

func NewRetweetRepository(db *gorm.DB) *RetweetRepository {
	return &RetweetRepository{db: db}
}

func (r *RetweetRepository) Create(ctx context.Context, retweet *models.Retweet) error {
	if err := r.db.WithContext(ctx).Create(retweet).Error; err != nil {
		return fmt.Errorf("failed to create retweet: %w", err)
	}
	return nil
}

func (r *RetweetRepository) Delete(ctx context.Context, userID, tweetID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Retweet{}).Error; err != nil {
		return fmt.Errorf("failed to delete retweet: %w", err)
	}
	return nil
}

func (r *RetweetRepository) Get(ctx context.Context, userID, tweetID uuid.UUID) (*models.Retweet, error) {
	var retweet models.Retweet
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		First(&retweet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get retweet: %w", err)
	}
	return &retweet, nil
}

func (r *RetweetRepository) CountByTweetID(ctx context.Context, tweetID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Retweet{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count retweets: %w", err)
	}
	return count, nil
}

func (r *RetweetRepository) IsRetweeted(ctx context.Context, userID, tweetID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Retweet{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check retweet status: %w", err)
	}
	return count > 0, nil
}

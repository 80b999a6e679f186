package repository

import (
	"context"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&tweet, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return &tweet, nil
}

func (r *TweetRepository) GetLatest(ctx context.Context, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest tweets: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) GetByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get tweets by user: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) GetLikedByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN likes ON likes.tweet_id = tweets.id").
		Where("likes.user_id = ? AND likes.deleted_at IS NULL", userID).
		Order("likes.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get liked tweets: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) GetRetweetedByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN retweets ON retweets.tweet_id = tweets.id").
		Where("retweets.user_id = ? AND retweets.deleted_at IS NULL", userID).
		Order("retweets.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to get retweeted tweets: %w", err)
	}
	return tweets, nil
}

func (r *TweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.Tweet{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) UpdateLikeCount(ctx context.Context, tweetID uuid.UUID, delta int64) error {
	if err := r.db.WithContext(ctx).Model(&models.Tweet{}).
		Where("id = ?", tweetID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update like count: %w", err)
	}
	return nil
}

func (r *TweetRepository) UpdateCommentCount(ctx context.Context, tweetID uuid.UUID, delta int64) error {
	if err := r.db.WithContext(ctx).Model(&models.Tweet{}).
		Where("id = ?", tweetID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}
	return nil
}

func (r *TweetRepository) UpdateRetweetCount(ctx context.Context, tweetID uuid.UUID, delta int64) error {
	if err := r.db.WithContext(ctx).Model(&models.Tweet{}).
		Where("id = ?", tweetID).
		UpdateColumn("retweet_count", gorm.Expr("retweet_count + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update retweet count: %w", err)
	}
	return nil
}

func (r *TweetRepository) Search(ctx context.Context, query string, offset, limit int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	db := r.db.WithContext(ctx).Preload("User")

	if query != "" {
		db = db.Where("content LIKE ?", "%"+query+"%")
	}

	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("failed to search tweets: %w", err)
	}
	return tweets, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) *HashtagRepository {
	return &HashtagRepository{db: db}
}

// GetOrCreate 返回已有标签或新建一条，并递增使用计数
func (r *HashtagRepository) GetOrCreate(ctx context.Context, tag string) (*models.Hashtag, error) {
	hashtag := &models.Hashtag{Tag: tag}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag"}},
			DoNothing: true,
		}).
		Create(hashtag).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert hashtag: %w", err)
	}

	if err := r.db.WithContext(ctx).
		First(hashtag, "tag = ?", tag).Error; err != nil {
		return nil, fmt.Errorf("failed to get hashtag: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&models.Hashtag{}).
		Where("id = ?", hashtag.ID).
		UpdateColumn("use_count", gorm.Expr("use_count + ?", 1)).Error; err != nil {
		return nil, fmt.Errorf("failed to update hashtag use count: %w", err)
	}

	return hashtag, nil
}

func (r *HashtagRepository) LinkTweet(ctx context.Context, tweetID, hashtagID uuid.UUID) error {
	link := &models.TweetHashtag{TweetID: tweetID, HashtagID: hashtagID}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("failed to link tweet hashtag: %w", err)
	}
	return nil
}

func (r *HashtagRepository) CreateMention(ctx context.Context, mention *models.Mention) error {
	if err := r.db.WithContext(ctx).Create(mention).Error; err != nil {
		return fmt.Errorf("failed to create mention: %w", err)
	}
	return nil
}

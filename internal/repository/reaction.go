package repository

import (
	"context"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

func (r *ReactionRepository) Create(ctx context.Context, reaction *models.EmotionReaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return fmt.Errorf("failed to create reaction: %w", err)
	}
	return nil
}

// DeleteByTweetAndUser 同一用户对同一推文只保留一条反应
func (r *ReactionRepository) DeleteByTweetAndUser(ctx context.Context, tweetID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("tweet_id = ? AND user_id = ?", tweetID, userID).
		Delete(&models.EmotionReaction{}).Error; err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	return nil
}

func (r *ReactionRepository) GetByTweetID(ctx context.Context, tweetID uuid.UUID) ([]*models.EmotionReaction, error) {
	var reactions []*models.EmotionReaction
	if err := r.db.WithContext(ctx).
		Where("tweet_id = ?", tweetID).
		Order("created_at DESC").
		Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get reactions: %w", err)
	}
	return reactions, nil
}

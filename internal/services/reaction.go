package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/emotion"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/google/uuid"
)

type ReactionService struct {
	reactionRepo *repository.ReactionRepository
	tweetRepo    *repository.TweetRepository
	emotion      *emotion.Client
	logger       *logger.Logger
}

func NewReactionService(reactionRepo *repository.ReactionRepository, tweetRepo *repository.TweetRepository, emotion *emotion.Client, logger *logger.Logger) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		tweetRepo:    tweetRepo,
		emotion:      emotion,
		logger:       logger,
	}
}

type ReactRequest struct {
	Image string `json:"image" binding:"required"`
}

// ReactionSummary 按表情聚合的反应统计
type ReactionSummary struct {
	TweetID   string           `json:"tweet_id"`
	Total     int              `json:"total"`
	Reactions map[string]int64 `json:"reactions"`
}

// Detect 调用表情识别服务，不落库
func (s *ReactionService) Detect(ctx context.Context, image string) (*emotion.AnalyzeResponse, error) {
	result, err := s.emotion.Analyze(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze emotion: %w", err)
	}

	return result, nil
}

// React 识别摄像头快照里的表情并记录为对推文的反应；
// 同一用户对同一推文只保留最新一条
func (s *ReactionService) React(ctx context.Context, userID, tweetID string, req *ReactRequest) (*models.EmotionReaction, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID: %w", err)
	}

	// 检查推文是否存在
	tweet, err := s.tweetRepo.GetByID(ctx, tweetUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	if tweet == nil {
		return nil, errors.New("tweet not found")
	}

	result, err := s.emotion.Analyze(ctx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze emotion: %w", err)
	}
	if !result.Success || len(result.Emotions) == 0 {
		return nil, errors.New("no face detected")
	}

	face := result.Emotions[0]

	// 覆盖旧反应
	if err := s.reactionRepo.DeleteByTweetAndUser(ctx, tweetUUID, userUUID); err != nil {
		return nil, fmt.Errorf("failed to delete previous reaction: %w", err)
	}

	reaction := &models.EmotionReaction{
		TweetID:    tweetUUID,
		UserID:     userUUID,
		Emotion:    face.DominantEmotion,
		Confidence: face.Confidence,
	}

	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		return nil, fmt.Errorf("failed to create reaction: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  userID,
		"emotion":  reaction.Emotion,
	}).Info("Emotion reaction recorded")
	return reaction, nil
}

// Remove 撤回当前用户对推文的反应
func (s *ReactionService) Remove(ctx context.Context, userID, tweetID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	if err := s.reactionRepo.DeleteByTweetAndUser(ctx, tweetUUID, userUUID); err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  userID,
	}).Info("Emotion reaction removed")
	return nil
}

// List 返回推文的全部表情反应
func (s *ReactionService) List(ctx context.Context, tweetID string) ([]*models.EmotionReaction, error) {
	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID: %w", err)
	}

	reactions, err := s.reactionRepo.GetByTweetID(ctx, tweetUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions: %w", err)
	}

	return reactions, nil
}

// Summary 返回推文的表情反应统计
func (s *ReactionService) Summary(ctx context.Context, tweetID string) (*ReactionSummary, error) {
	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID: %w", err)
	}

	reactions, err := s.reactionRepo.GetByTweetID(ctx, tweetUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions: %w", err)
	}

	summary := &ReactionSummary{
		TweetID:   tweetID,
		Total:     len(reactions),
		Reactions: make(map[string]int64),
	}
	for _, r := range reactions {
		summary.Reactions[r.Emotion]++
	}

	return summary, nil
}

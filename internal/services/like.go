package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/google/uuid"
)

type LikeService struct {
	likeRepo  *repository.LikeRepository
	tweetRepo *repository.TweetRepository
	notifier  *NotificationService
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewLikeService(likeRepo *repository.LikeRepository, tweetRepo *repository.TweetRepository, notifier *NotificationService, producer queue.Publisher, logger *logger.Logger) *LikeService {
	return &LikeService{
		likeRepo:  likeRepo,
		tweetRepo: tweetRepo,
		notifier:  notifier,
		producer:  producer,
		logger:    logger,
	}
}

func (s *LikeService) Like(ctx context.Context, userID, tweetID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	// 检查推文是否存在
	tweet, err := s.tweetRepo.GetByID(ctx, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to get tweet: %w", err)
	}
	if tweet == nil {
		return errors.New("tweet not found")
	}

	// 检查是否已经点赞
	existingLike, err := s.likeRepo.Get(ctx, userUUID, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to check like status: %w", err)
	}
	if existingLike != nil {
		return errors.New("already liked")
	}

	like := &models.Like{
		UserID:  userUUID,
		TweetID: tweetUUID,
	}

	if err := s.likeRepo.Create(ctx, like); err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	// 更新点赞数
	if err := s.tweetRepo.UpdateLikeCount(ctx, tweetUUID, 1); err != nil {
		s.logger.WithError(err).Error("Failed to update like count")
	}

	// 通知推文作者
	notification := &models.Notification{
		RecipientID: tweet.UserID,
		SenderID:    userUUID,
		Type:        models.NotificationLike,
		TweetID:     tweetRef(tweetUUID),
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.WithError(err).Error("Failed to create like notification")
	}

	// 发送点赞事件
	event := queue.Event{
		Type:      queue.EventLikeCreated,
		Timestamp: like.CreatedAt,
		Data: queue.LikeEventData{
			TweetID: tweetID,
			UserID:  userID,
		},
	}
	if err := s.producer.Publish(ctx, tweetID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish like created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  userID,
	}).Info("Tweet liked successfully")
	return nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, tweetID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	existingLike, err := s.likeRepo.Get(ctx, userUUID, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to check like status: %w", err)
	}
	if existingLike == nil {
		return errors.New("not liked")
	}

	if err := s.likeRepo.Delete(ctx, userUUID, tweetUUID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	if err := s.tweetRepo.UpdateLikeCount(ctx, tweetUUID, -1); err != nil {
		s.logger.WithError(err).Error("Failed to update like count")
	}

	// 发送取消点赞事件
	event := queue.Event{
		Type:      queue.EventLikeDeleted,
		Timestamp: existingLike.CreatedAt,
		Data: queue.LikeEventData{
			TweetID: tweetID,
			UserID:  userID,
		},
	}
	if err := s.producer.Publish(ctx, tweetID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish like deleted event")
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  userID,
	}).Info("Tweet unliked successfully")
	return nil
}

// IsLiked 查询当前用户是否点赞了推文
func (s *LikeService) IsLiked(ctx context.Context, userID, tweetID string) (bool, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return false, fmt.Errorf("invalid tweet ID: %w", err)
	}

	return s.likeRepo.IsLiked(ctx, userUUID, tweetUUID)
}

// GetLikes 返回点赞了推文的用户列表
func (s *LikeService) GetLikes(ctx context.Context, tweetID string, offset, limit int) ([]*models.Like, error) {
	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID: %w", err)
	}

	likes, err := s.likeRepo.GetByTweetID(ctx, tweetUUID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes: %w", err)
	}

	return likes, nil
}

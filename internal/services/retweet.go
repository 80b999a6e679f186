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

type RetweetService struct {
	retweetRepo *repository.RetweetRepository
	tweetRepo   *repository.TweetRepository
	notifier    *NotificationService
	producer    queue.Publisher
	logger      *logger.Logger
}

func NewRetweetService(retweetRepo *repository.RetweetRepository, tweetRepo *repository.TweetRepository, notifier *NotificationService, producer queue.Publisher, logger *logger.Logger) *RetweetService {
	return &RetweetService{
		retweetRepo: retweetRepo,
		tweetRepo:   tweetRepo,
		notifier:    notifier,
		producer:    producer,
		logger:      logger,
	}
}

type RetweetRequest struct {
	Comment string `json:"comment" binding:"max=280"`
}

func (s *RetweetService) Retweet(ctx context.Context, userID, tweetID string, req *RetweetRequest) error {
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

	// 检查是否已经转发
	existingRetweet, err := s.retweetRepo.Get(ctx, userUUID, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to check retweet status: %w", err)
	}
	if existingRetweet != nil {
		return errors.New("already retweeted")
	}

	retweet := &models.Retweet{
		UserID:  userUUID,
		TweetID: tweetUUID,
	}
	if req != nil {
		retweet.Comment = req.Comment
	}

	if err := s.retweetRepo.Create(ctx, retweet); err != nil {
		return fmt.Errorf("failed to create retweet: %w", err)
	}

	// 更新转发数
	if err := s.tweetRepo.UpdateRetweetCount(ctx, tweetUUID, 1); err != nil {
		s.logger.WithError(err).Error("Failed to update retweet count")
	}

	// 通知推文作者
	notification := &models.Notification{
		RecipientID: tweet.UserID,
		SenderID:    userUUID,
		Type:        models.NotificationRetweet,
		TweetID:     tweetRef(tweetUUID),
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.WithError(err).Error("Failed to create retweet notification")
	}

	// 发送转发事件
	event := queue.Event{
		Type:      queue.EventRetweetCreated,
		Timestamp: retweet.CreatedAt,
		Data: queue.RetweetEventData{
			TweetID: tweetID,
			UserID:  userID,
			Comment: retweet.Comment,
		},
	}
	if err := s.producer.Publish(ctx, tweetID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish retweet created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  userID,
	}).Info("Tweet retweeted successfully")
	return nil
}

func (s *RetweetService) Unretweet(ctx context.Context, userID, tweetID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	existingRetweet, err := s.retweetRepo.Get(ctx, userUUID, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to check retweet status: %w", err)
	}
	if existingRetweet == nil {
		return errors.New("not retweeted")
	}

	if err := s.retweetRepo.Delete(ctx, userUUID, tweetUUID); err != nil {
		return fmt.Errorf("failed to delete retweet: %w", err)
	}

	if err := s.tweetRepo.UpdateRetweetCount(ctx, tweetUUID, -1); err != nil {
		s.logger.WithError(err).Error("Failed to update retweet count")
	}

	// 发送取消转发事件
	event := queue.Event{
		Type:      queue.EventRetweetDeleted,
		Timestamp: existingRetweet.CreatedAt,
		Data: queue.RetweetEventData{
			TweetID: tweetID,
			UserID:  userID,
		},
	}
	if err := s.producer.Publish(ctx, tweetID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish retweet deleted event")
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweetID,
		"user_id":  userID,
	}).Info("Tweet unretweeted successfully")
	return nil
}

// IsRetweeted 查询当前用户是否转发了推文
func (s *RetweetService) IsRetweeted(ctx context.Context, userID, tweetID string) (bool, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return false, fmt.Errorf("invalid tweet ID: %w", err)
	}

	return s.retweetRepo.IsRetweeted(ctx, userUUID, tweetUUID)
}

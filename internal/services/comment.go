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

type CommentService struct {
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
	userRepo    *repository.UserRepository
	notifier    *NotificationService
	producer    queue.Publisher
	logger      *logger.Logger
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	tweetRepo *repository.TweetRepository,
	userRepo *repository.UserRepository,
	notifier *NotificationService,
	producer queue.Publisher,
	logger *logger.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		producer:    producer,
		logger:      logger,
	}
}

type CreateCommentRequest struct {
	TweetID string `json:"tweet_id" binding:"required"`
	Content string `json:"content" binding:"required,max=280"`
}

func (s *CommentService) Create(ctx context.Context, userID string, req *CreateCommentRequest) (*models.Comment, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(req.TweetID)
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

	user, err := s.userRepo.GetByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	comment := &models.Comment{
		UserID:  userUUID,
		TweetID: tweetUUID,
		Content: req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.User = *user

	// 更新评论数
	if err := s.tweetRepo.UpdateCommentCount(ctx, tweetUUID, 1); err != nil {
		s.logger.WithError(err).Error("Failed to update comment count")
	}

	// 通知推文作者
	notification := &models.Notification{
		RecipientID: tweet.UserID,
		SenderID:    userUUID,
		Type:        models.NotificationComment,
		TweetID:     tweetRef(tweetUUID),
		CommentID:   &comment.ID,
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.WithError(err).Error("Failed to create comment notification")
	}

	// 发送评论事件
	event := queue.Event{
		Type:      queue.EventCommentCreated,
		Timestamp: comment.CreatedAt,
		Data: queue.CommentEventData{
			CommentID: comment.ID.String(),
			TweetID:   req.TweetID,
			UserID:    userID,
			Content:   comment.Content,
		},
	}
	if err := s.producer.Publish(ctx, req.TweetID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish comment created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"comment_id": comment.ID,
		"tweet_id":   req.TweetID,
		"user_id":    userID,
	}).Info("Comment created successfully")
	return comment, nil
}

func (s *CommentService) GetByTweetID(ctx context.Context, tweetID string, offset, limit int) ([]*models.Comment, error) {
	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID: %w", err)
	}

	comments, err := s.commentRepo.GetByTweetID(ctx, tweetUUID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	commentUUID, err := uuid.Parse(commentID)
	if err != nil {
		return fmt.Errorf("invalid comment ID: %w", err)
	}

	comment, err := s.commentRepo.GetByID(ctx, commentUUID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return errors.New("comment not found")
	}

	// 只有评论作者可以删除
	if comment.UserID != userUUID {
		return errors.New("permission denied")
	}

	if err := s.commentRepo.Delete(ctx, commentUUID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if err := s.tweetRepo.UpdateCommentCount(ctx, comment.TweetID, -1); err != nil {
		s.logger.WithError(err).Error("Failed to update comment count")
	}

	s.logger.WithField("comment_id", commentID).Info("Comment deleted successfully")
	return nil
}

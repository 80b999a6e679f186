package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/google/uuid"
)

type BookmarkService struct {
	bookmarkRepo *repository.BookmarkRepository
	tweetRepo    *repository.TweetRepository
	logger       *logger.Logger
}

func NewBookmarkService(bookmarkRepo *repository.BookmarkRepository, tweetRepo *repository.TweetRepository, logger *logger.Logger) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		tweetRepo:    tweetRepo,
		logger:       logger,
	}
}

func (s *BookmarkService) Bookmark(ctx context.Context, userID, tweetID string) error {
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

	existing, err := s.bookmarkRepo.Get(ctx, userUUID, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to check bookmark: %w", err)
	}
	if existing != nil {
		return errors.New("already bookmarked")
	}

	bookmark := &models.Bookmark{
		UserID:  userUUID,
		TweetID: tweetUUID,
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	return nil
}

func (s *BookmarkService) Unbookmark(ctx context.Context, userID, tweetID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	existing, err := s.bookmarkRepo.Get(ctx, userUUID, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to check bookmark: %w", err)
	}
	if existing == nil {
		return errors.New("not bookmarked")
	}

	if err := s.bookmarkRepo.Delete(ctx, userUUID, tweetUUID); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return nil
}

// List 返回用户收藏的推文
func (s *BookmarkService) List(ctx context.Context, userID string, offset, limit int) ([]*models.Tweet, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	tweets, err := s.bookmarkRepo.GetTweetsByUserID(ctx, userUUID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	return tweets, nil
}

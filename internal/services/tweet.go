package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/google/uuid"
)

const (
	timelineCacheKey     = "timeline:latest"
	timelineCachePattern = "timeline:*"
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
	mediaRepo *repository.MediaRepository
	cache     *cache.RedisClient
	config    *config.CacheConfig
	producer  queue.Publisher
	logger    *logger.Logger
}

func NewTweetService(
	tweetRepo *repository.TweetRepository,
	userRepo *repository.UserRepository,
	mediaRepo *repository.MediaRepository,
	cache *cache.RedisClient,
	config *config.CacheConfig,
	producer queue.Publisher,
	logger *logger.Logger,
) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
		cache:     cache,
		config:    config,
		producer:  producer,
		logger:    logger,
	}
}

type CreateTweetRequest struct {
	Content string   `json:"content" binding:"required,max=280"`
	Tags    []string `json:"tags"`
	MediaID string   `json:"media_id"`
}

func (s *TweetService) Create(ctx context.Context, userID string, req *CreateTweetRequest) (*models.Tweet, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	// 检查用户是否存在
	user, err := s.userRepo.GetByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	tweet := &models.Tweet{
		UserID:  userUUID,
		Content: req.Content,
		Tags:    req.Tags,
	}

	// 绑定已上传的媒体
	if req.MediaID != "" {
		mediaUUID, err := uuid.Parse(req.MediaID)
		if err != nil {
			return nil, fmt.Errorf("invalid media ID: %w", err)
		}

		media, err := s.mediaRepo.GetByID(ctx, mediaUUID)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		if media == nil {
			return nil, errors.New("media not found")
		}
		if media.OwnerID != userUUID {
			return nil, errors.New("media does not belong to user")
		}

		tweet.MediaID = &media.ID
		tweet.MediaType = media.MediaType
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("failed to create tweet: %w", err)
	}
	tweet.User = *user

	// 更新用户推文数
	if err := s.userRepo.UpdateTweetCount(ctx, userUUID, 1); err != nil {
		s.logger.WithError(err).Error("Failed to update tweet count")
	}

	s.invalidateTimeline(ctx)

	// 发送推文创建事件
	event := queue.Event{
		Type:      queue.EventTweetCreated,
		Timestamp: tweet.CreatedAt,
		Data: queue.TweetEventData{
			TweetID:  tweet.ID.String(),
			UserID:   userID,
			Username: user.Username,
			Content:  tweet.Content,
		},
	}
	if err := s.producer.Publish(ctx, tweet.ID.String(), event); err != nil {
		s.logger.WithError(err).Error("Failed to publish tweet created event")
	}

	s.logger.WithFields(map[string]interface{}{
		"tweet_id": tweet.ID,
		"user_id":  userID,
	}).Info("Tweet created successfully")
	return tweet, nil
}

func (s *TweetService) GetByID(ctx context.Context, tweetID string) (*models.Tweet, error) {
	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID: %w", err)
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	if tweet == nil {
		return nil, errors.New("tweet not found")
	}

	return tweet, nil
}

// GetLatest 返回全站最新推文，带短 TTL 缓存
func (s *TweetService) GetLatest(ctx context.Context, offset, limit int) ([]*models.Tweet, error) {
	// 只缓存首页第一页
	cacheable := offset == 0

	if cacheable {
		var cached []*models.Tweet
		if err := s.cache.GetJSON(ctx, timelineCacheKey, &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	tweets, err := s.tweetRepo.GetLatest(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest tweets: %w", err)
	}

	if cacheable {
		if err := s.cache.SetJSON(ctx, timelineCacheKey, tweets, s.config.TimelineTTL); err != nil {
			s.logger.WithError(err).Debug("Failed to cache timeline")
		}
	}

	return tweets, nil
}

func (s *TweetService) GetByUsername(ctx context.Context, username string, offset, limit int) ([]*models.Tweet, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	tweets, err := s.tweetRepo.GetByUserID(ctx, user.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user tweets: %w", err)
	}

	return tweets, nil
}

// GetLikedByUsername 返回用户点赞过的推文
func (s *TweetService) GetLikedByUsername(ctx context.Context, username string, offset, limit int) ([]*models.Tweet, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	tweets, err := s.tweetRepo.GetLikedByUserID(ctx, user.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked tweets: %w", err)
	}

	return tweets, nil
}

// GetRetweetedByUsername 返回用户转发过的推文
func (s *TweetService) GetRetweetedByUsername(ctx context.Context, username string, offset, limit int) ([]*models.Tweet, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	tweets, err := s.tweetRepo.GetRetweetedByUserID(ctx, user.ID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get retweeted tweets: %w", err)
	}

	return tweets, nil
}

func (s *TweetService) Delete(ctx context.Context, userID, tweetID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	tweet, err := s.tweetRepo.GetByID(ctx, tweetUUID)
	if err != nil {
		return fmt.Errorf("failed to get tweet: %w", err)
	}
	if tweet == nil {
		return errors.New("tweet not found")
	}

	// 只有作者可以删除
	if tweet.UserID != userUUID {
		return errors.New("permission denied")
	}

	if err := s.tweetRepo.Delete(ctx, tweetUUID); err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}

	if err := s.userRepo.UpdateTweetCount(ctx, userUUID, -1); err != nil {
		s.logger.WithError(err).Error("Failed to update tweet count")
	}

	s.invalidateTimeline(ctx)

	// 发送推文删除事件
	event := queue.Event{
		Type:      queue.EventTweetDeleted,
		Timestamp: tweet.CreatedAt,
		Data: queue.TweetEventData{
			TweetID: tweetID,
			UserID:  userID,
		},
	}
	if err := s.producer.Publish(ctx, tweetID, event); err != nil {
		s.logger.WithError(err).Error("Failed to publish tweet deleted event")
	}

	s.logger.WithField("tweet_id", tweetID).Info("Tweet deleted successfully")
	return nil
}

func (s *TweetService) Search(ctx context.Context, query string, offset, limit int) ([]*models.Tweet, error) {
	if query == "" {
		return []*models.Tweet{}, nil
	}

	tweets, err := s.tweetRepo.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search tweets: %w", err)
	}

	return tweets, nil
}

func (s *TweetService) invalidateTimeline(ctx context.Context) {
	// 清掉所有时间线键，而不只是首页
	if err := s.cache.DeleteByPattern(ctx, timelineCachePattern); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate timeline cache")
	}
}

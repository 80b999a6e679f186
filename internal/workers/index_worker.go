package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/internal/services"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/google/uuid"
)

var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// IndexWorker 消费推文事件，维护话题索引、@提及通知和缓存
type IndexWorker struct {
	hashtagRepo *repository.HashtagRepository
	userRepo    *repository.UserRepository
	notifier    *services.NotificationService
	cache       *cache.RedisClient
	consumer    *queue.KafkaConsumer
	logger      *logger.Logger
}

func NewIndexWorker(
	hashtagRepo *repository.HashtagRepository,
	userRepo *repository.UserRepository,
	notifier *services.NotificationService,
	cache *cache.RedisClient,
	consumer *queue.KafkaConsumer,
	logger *logger.Logger,
) *IndexWorker {
	return &IndexWorker{
		hashtagRepo: hashtagRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		cache:       cache,
		consumer:    consumer,
		logger:      logger,
	}
}

func (w *IndexWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting index worker...")

	return w.consumer.Subscribe(ctx, func(msg queue.Message) error {
		var event queue.Event
		data, err := json.Marshal(msg.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal message value: %w", err)
		}

		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		w.logger.WithFields(map[string]interface{}{
			"event_type": event.Type,
			"timestamp":  event.Timestamp,
		}).Info("Processing event")

		switch event.Type {
		case queue.EventTweetCreated:
			return w.handleTweetCreated(ctx, event)
		case queue.EventUserUpdated:
			return w.handleUserUpdated(ctx, event)
		default:
			// 其余事件只做记录
			return nil
		}
	})
}

func (w *IndexWorker) Stop() error {
	w.logger.Info("Stopping index worker...")
	return w.consumer.Close()
}

func (w *IndexWorker) handleTweetCreated(ctx context.Context, event queue.Event) error {
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid tweet created event data")
	}

	tweetID, ok := data["tweet_id"].(string)
	if !ok {
		return fmt.Errorf("missing tweet_id in event data")
	}

	userID, ok := data["user_id"].(string)
	if !ok {
		return fmt.Errorf("missing user_id in event data")
	}

	content, _ := data["content"].(string)

	tweetUUID, err := uuid.Parse(tweetID)
	if err != nil {
		return fmt.Errorf("invalid tweet ID: %w", err)
	}

	senderUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	// 建立话题索引
	for _, tag := range extractHashtags(content) {
		hashtag, err := w.hashtagRepo.GetOrCreate(ctx, tag)
		if err != nil {
			w.logger.WithError(err).WithField("tag", tag).Error("Failed to index hashtag")
			continue
		}
		if err := w.hashtagRepo.LinkTweet(ctx, tweetUUID, hashtag.ID); err != nil {
			w.logger.WithError(err).WithField("tag", tag).Error("Failed to link hashtag")
		}
	}

	// 处理 @提及
	for _, username := range extractMentions(content) {
		mentioned, err := w.userRepo.GetByUsername(ctx, username)
		if err != nil {
			w.logger.WithError(err).WithField("username", username).Error("Failed to resolve mention")
			continue
		}
		if mentioned == nil {
			continue
		}

		if err := w.hashtagRepo.CreateMention(ctx, &models.Mention{
			TweetID: tweetUUID,
			UserID:  mentioned.ID,
		}); err != nil {
			w.logger.WithError(err).Error("Failed to record mention")
			continue
		}

		notification := &models.Notification{
			RecipientID: mentioned.ID,
			SenderID:    senderUUID,
			Type:        models.NotificationMention,
			TweetID:     &tweetUUID,
		}
		if err := w.notifier.Notify(ctx, notification); err != nil {
			w.logger.WithError(err).Error("Failed to create mention notification")
		}
	}

	return nil
}

func (w *IndexWorker) handleUserUpdated(ctx context.Context, event queue.Event) error {
	// 推文里内嵌的作者资料变了，时间线缓存作废
	if err := w.cache.Delete(ctx, "timeline:latest"); err != nil {
		w.logger.WithError(err).Error("Failed to invalidate timeline cache")
	}

	return nil
}

// extractHashtags 返回去重后的话题，统一为小写
func extractHashtags(content string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, match := range hashtagPattern.FindAllStringSubmatch(content, -1) {
		tag := strings.ToLower(match[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// extractMentions 返回去重后的被提及用户名
func extractMentions(content string) []string {
	seen := make(map[string]bool)
	var usernames []string
	for _, match := range mentionPattern.FindAllStringSubmatch(content, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			usernames = append(usernames, match[1])
		}
	}
	return usernames
}

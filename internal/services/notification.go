package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/google/uuid"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	cache            *cache.RedisClient
	config           *config.CacheConfig
	logger           *logger.Logger
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, cache *cache.RedisClient, config *config.CacheConfig, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		cache:            cache,
		config:           config,
		logger:           logger,
	}
}

// Notify 写入通知并使未读计数缓存失效；自己触发自己的动作不产生通知
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if notification.RecipientID == notification.SenderID {
		return nil
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.bumpCount(ctx, notification.RecipientID)
	return nil
}

func (s *NotificationService) List(ctx context.Context, recipientID string, offset, limit int) ([]*models.Notification, error) {
	recipientUUID, err := uuid.Parse(recipientID)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient ID: %w", err)
	}

	notifications, err := s.notificationRepo.GetByRecipientID(ctx, recipientUUID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	recipientUUID, err := uuid.Parse(recipientID)
	if err != nil {
		return 0, fmt.Errorf("invalid recipient ID: %w", err)
	}

	// 尝试从缓存获取未读计数
	cacheKey := s.countCacheKey(recipientUUID)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, recipientUUID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	// 缓存结果
	if err := s.cache.Set(ctx, cacheKey, count, s.config.CountTTL); err != nil {
		s.logger.WithError(err).Debug("Failed to cache unread count")
	}

	return count, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	recipientUUID, err := uuid.Parse(recipientID)
	if err != nil {
		return fmt.Errorf("invalid recipient ID: %w", err)
	}

	notificationUUID, err := uuid.Parse(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}

	notification, err := s.notificationRepo.GetByID(ctx, notificationUUID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notification == nil {
		return errors.New("notification not found")
	}

	// 检查权限
	if notification.RecipientID != recipientUUID {
		return errors.New("permission denied")
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationUUID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	s.invalidateCount(ctx, recipientUUID)
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, recipientID string) error {
	recipientUUID, err := uuid.Parse(recipientID)
	if err != nil {
		return fmt.Errorf("invalid recipient ID: %w", err)
	}

	if err := s.notificationRepo.MarkAllAsRead(ctx, recipientUUID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	s.invalidateCount(ctx, recipientUUID)

	s.logger.WithField("recipient_id", recipientID).Info("All notifications marked as read")
	return nil
}

func (s *NotificationService) countCacheKey(recipientID uuid.UUID) string {
	return fmt.Sprintf("notifications:count:%s", recipientID)
}

// bumpCount 已缓存的未读计数原地自增，冷缓存留给 UnreadCount 回填
func (s *NotificationService) bumpCount(ctx context.Context, recipientID uuid.UUID) {
	key := s.countCacheKey(recipientID)
	n, err := s.cache.Exists(ctx, key)
	if err != nil || n == 0 {
		return
	}

	if _, err := s.cache.Incr(ctx, key); err != nil {
		s.logger.WithError(err).Debug("Failed to bump unread count cache")
		s.invalidateCount(ctx, recipientID)
		return
	}
	if err := s.cache.Expire(ctx, key, s.config.CountTTL); err != nil {
		s.logger.WithError(err).Debug("Failed to refresh unread count TTL")
	}
}

func (s *NotificationService) invalidateCount(ctx context.Context, recipientID uuid.UUID) {
	if err := s.cache.Delete(ctx, s.countCacheKey(recipientID)); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate unread count cache")
	}
}

// tweetRef 供同级服务在通知里引用推文
func tweetRef(id uuid.UUID) *uuid.UUID {
	return &id
}

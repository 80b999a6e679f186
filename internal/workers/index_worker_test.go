package workers

import (
	"context"
	"testing"
	"time"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/internal/services"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"hello #golang world", []string{"golang"}},
		{"#Go #go #GO", []string{"go"}},
		{"no tags here", nil},
		{"#a #b #c", []string{"a", "b", "c"}},
		{"trailing #", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractHashtags(tt.content), tt.content)
	}
}

func TestExtractMentions(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"hey @alice look", []string{"alice"}},
		{"@alice @bob @alice", []string{"alice", "bob"}},
		{"email me at foo@bar.com", []string{"bar"}},
		{"nobody here", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractMentions(tt.content), tt.content)
	}
}

func newWorkerEnv(t *testing.T) (*IndexWorker, *gorm.DB, *repository.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tweet{},
		&models.Notification{},
		&models.Hashtag{},
		&models.TweetHashtag{},
		&models.Mention{},
	))

	log := logger.NewLogger()
	redisClient := cache.NewRedisClient("localhost:1", "", 0, 1, 1)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)
	cacheCfg := &config.CacheConfig{CountTTL: 30 * time.Second}

	notifier := services.NewNotificationService(notificationRepo, redisClient, cacheCfg, log)
	worker := NewIndexWorker(hashtagRepo, userRepo, notifier, redisClient, nil, log)
	return worker, db, userRepo
}

func TestHandleTweetCreated(t *testing.T) {
	worker, db, userRepo := newWorkerEnv(t)
	ctx := context.Background()

	author := &models.User{Username: "bob", Email: "bob@example.com", Password: "x", IsActive: true}
	require.NoError(t, userRepo.Create(ctx, author))
	mentioned := &models.User{Username: "alice", Email: "alice@example.com", Password: "x", IsActive: true}
	require.NoError(t, userRepo.Create(ctx, mentioned))

	tweetID := uuid.New()
	event := queue.Event{
		Type: queue.EventTweetCreated,
		Data: map[string]interface{}{
			"tweet_id": tweetID.String(),
			"user_id":  author.ID.String(),
			"content":  "hey @alice check out #golang and #Testing",
		},
	}

	require.NoError(t, worker.handleTweetCreated(ctx, event))

	// 话题已建立索引，统一小写
	var hashtags []models.Hashtag
	require.NoError(t, db.Order("tag").Find(&hashtags).Error)
	require.Len(t, hashtags, 2)
	assert.Equal(t, "golang", hashtags[0].Tag)
	assert.Equal(t, "testing", hashtags[1].Tag)
	assert.Equal(t, int64(1), hashtags[0].UseCount)

	// 提及已落库并指向被提及的用户
	var mentions []models.Mention
	require.NoError(t, db.Where("tweet_id = ?", tweetID).Find(&mentions).Error)
	require.Len(t, mentions, 1)
	assert.Equal(t, mentioned.ID, mentions[0].UserID)

	// 被提及的用户收到通知
	var notifications []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", mentioned.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationMention, notifications[0].Type)

	// 重复处理同一条推文不会重复计数话题关联
	var links []models.TweetHashtag
	require.NoError(t, db.Find(&links).Error)
	assert.Len(t, links, 2)
}

// 提及不存在的用户被忽略
func TestHandleTweetCreatedUnknownMention(t *testing.T) {
	worker, db, userRepo := newWorkerEnv(t)
	ctx := context.Background()

	author := &models.User{Username: "bob", Email: "bob@example.com", Password: "x", IsActive: true}
	require.NoError(t, userRepo.Create(ctx, author))

	event := queue.Event{
		Type: queue.EventTweetCreated,
		Data: map[string]interface{}{
			"tweet_id": uuid.New().String(),
			"user_id":  author.ID.String(),
			"content":  "hello @ghost",
		},
	}

	require.NoError(t, worker.handleTweetCreated(ctx, event))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

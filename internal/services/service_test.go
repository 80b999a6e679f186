package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/models"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakePublisher records events instead of talking to Kafka.
type fakePublisher struct {
	mu     sync.Mutex
	events []queue.Event
}

func (p *fakePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if event, ok := value.(queue.Event); ok {
		p.events = append(p.events, event)
	}
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) lastEvent(typ queue.EventType) (queue.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].Type == typ {
			return p.events[i], true
		}
	}
	return queue.Event{}, false
}

func (p *fakePublisher) eventTypes() []queue.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]queue.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

type testEnv struct {
	db        *gorm.DB
	publisher *fakePublisher

	userRepo         *repository.UserRepository
	tweetRepo        *repository.TweetRepository
	notificationRepo *repository.NotificationRepository
	hashtagRepo      *repository.HashtagRepository

	users         *UserService
	tweets        *TweetService
	likes         *LikeService
	retweets      *RetweetService
	comments      *CommentService
	notifications *NotificationService
	bookmarks     *BookmarkService
}

// newTestEnv wires the service stack against an in-memory database.
// The redis client points at a closed port; cache failures degrade to
// the database path, which is exactly what the tests exercise.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tweet{},
		&models.Like{},
		&models.Retweet{},
		&models.Comment{},
		&models.Bookmark{},
		&models.Notification{},
		&models.Media{},
		&models.EmotionReaction{},
		&models.Hashtag{},
		&models.TweetHashtag{},
		&models.Mention{},
	))

	log := logger.NewLogger()
	publisher := &fakePublisher{}
	redisClient := cache.NewRedisClient("localhost:1", "", 0, 1, 1)
	cacheCfg := &config.CacheConfig{TimelineTTL: time.Minute, CountTTL: 30 * time.Second}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	retweetRepo := repository.NewRetweetRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	hashtagRepo := repository.NewHashtagRepository(db)

	notifications := NewNotificationService(notificationRepo, redisClient, cacheCfg, log)

	return &testEnv{
		db:               db,
		publisher:        publisher,
		userRepo:         userRepo,
		tweetRepo:        tweetRepo,
		notificationRepo: notificationRepo,
		hashtagRepo:      hashtagRepo,
		users:            NewUserService(userRepo, followRepo, notifications, publisher, log),
		tweets:           NewTweetService(tweetRepo, userRepo, mediaRepo, redisClient, cacheCfg, publisher, log),
		likes:            NewLikeService(likeRepo, tweetRepo, notifications, publisher, log),
		retweets:         NewRetweetService(retweetRepo, tweetRepo, notifications, publisher, log),
		comments:         NewCommentService(commentRepo, tweetRepo, userRepo, notifications, publisher, log),
		notifications:    notifications,
		bookmarks:        NewBookmarkService(bookmarkRepo, tweetRepo, log),
	}
}

// register is a shortcut used by most tests.
func (env *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.users.Register(context.Background(), &RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

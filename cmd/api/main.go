package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/handlers"
	"github.com/HediM1312/twitter-clone/internal/middleware"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/internal/services"
	"github.com/HediM1312/twitter-clone/internal/workers"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/emotion"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	logger := logger.NewLogger()
	logger.Info("Starting Twitter Clone API server...")

	// 初始化数据库
	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// 自动迁移数据库表
	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	// 初始化Redis缓存
	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	// 检查Redis连接
	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	// 初始化Kafka生产者
	tweetEventsProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.TweetEvents)
	defer tweetEventsProducer.Close()

	userEventsProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.UserEvents)
	defer userEventsProducer.Close()

	// 初始化Kafka消费者
	tweetEventsConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.TweetEvents, "index-worker-group")
	defer tweetEventsConsumer.Close()

	// 初始化表情识别客户端
	emotionClient := emotion.NewClient(cfg.Emotion.BaseURL, cfg.Emotion.Timeout)

	// 初始化仓库
	userRepo := repository.NewUserRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)
	tweetRepo := repository.NewTweetRepository(db.DB)
	likeRepo := repository.NewLikeRepository(db.DB)
	retweetRepo := repository.NewRetweetRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	mediaRepo := repository.NewMediaRepository(db.DB)
	reactionRepo := repository.NewReactionRepository(db.DB)
	bookmarkRepo := repository.NewBookmarkRepository(db.DB)
	hashtagRepo := repository.NewHashtagRepository(db.DB)

	// 初始化服务
	notificationService := services.NewNotificationService(notificationRepo, redisClient, &cfg.Cache, logger)
	userService := services.NewUserService(userRepo, followRepo, notificationService, userEventsProducer, logger)
	tweetService := services.NewTweetService(tweetRepo, userRepo, mediaRepo, redisClient, &cfg.Cache, tweetEventsProducer, logger)
	likeService := services.NewLikeService(likeRepo, tweetRepo, notificationService, tweetEventsProducer, logger)
	retweetService := services.NewRetweetService(retweetRepo, tweetRepo, notificationService, tweetEventsProducer, logger)
	commentService := services.NewCommentService(commentRepo, tweetRepo, userRepo, notificationService, tweetEventsProducer, logger)
	mediaService := services.NewMediaService(mediaRepo, &cfg.Media, logger)
	reactionService := services.NewReactionService(reactionRepo, tweetRepo, emotionClient, logger)
	bookmarkService := services.NewBookmarkService(bookmarkRepo, tweetRepo, logger)

	// 初始化工作处理器
	indexWorker := workers.NewIndexWorker(hashtagRepo, userRepo, notificationService, redisClient, tweetEventsConsumer, logger)

	// 启动工作处理器
	go func() {
		if err := indexWorker.Start(ctx); err != nil {
			logger.WithError(err).Error("Index worker stopped with error")
		}
	}()

	// 初始化处理器
	userHandler := handlers.NewUserHandler(userService, mediaService, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	tweetHandler := handlers.NewTweetHandler(tweetService, mediaService)
	interactionHandler := handlers.NewInteractionHandler(likeService, retweetService, commentService, bookmarkService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	reactionHandler := handlers.NewReactionHandler(reactionService)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.NewMetrics())

	// 添加CORS中间件
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	// Prometheus指标
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	jwtAuth := middleware.NewJWTAuth(&middleware.JWTConfig{Secret: cfg.JWT.Secret})

	// 登录令牌（表单编码）
	router.POST("/token", userHandler.Token)

	// API路由
	api := router.Group("/api/v1")
	{
		// 公开路由
		api.POST("/users", userHandler.Register)
		api.POST("/users/login", userHandler.Login)
		api.GET("/users/search", userHandler.Search)

		api.GET("/media/:id", mediaHandler.Serve)

		// 需要认证的路由
		protected := api.Group("")
		protected.Use(jwtAuth)
		{
			// 用户相关
			protected.GET("/users/me", userHandler.Me)
			protected.PUT("/users/profile", userHandler.UpdateProfile)
			protected.POST("/users/profile-photo", userHandler.UploadProfilePicture)
			protected.POST("/users/banner-photo", userHandler.UploadBannerPicture)
			protected.GET("/users/:username", userHandler.GetProfile)
			protected.GET("/users/:username/stats", userHandler.Stats)
			protected.GET("/users/:username/followers", userHandler.GetFollowers)
			protected.GET("/users/:username/following", userHandler.GetFollowing)
			protected.POST("/users/:username/follow", userHandler.Follow)
			protected.DELETE("/users/:username/unfollow", userHandler.Unfollow)
			protected.GET("/users/:username/follow_status", userHandler.FollowStatus)
			protected.GET("/users/:username/tweets", tweetHandler.UserTweets)
			protected.GET("/users/:username/liked-tweets", tweetHandler.LikedTweets)
			protected.GET("/users/:username/retweeted-tweets", tweetHandler.RetweetedTweets)

			// 推文相关
			protected.POST("/tweets", tweetHandler.Create)
			protected.POST("/tweets/with-media", tweetHandler.CreateWithMedia)
			protected.GET("/tweets", tweetHandler.Timeline)
			protected.GET("/tweets/search", tweetHandler.Search)
			protected.GET("/tweets/:id", tweetHandler.Get)
			protected.DELETE("/tweets/:id", tweetHandler.Delete)

			// 互动相关
			protected.POST("/tweets/:id/like", interactionHandler.Like)
			protected.DELETE("/tweets/:id/unlike", interactionHandler.Unlike)
			protected.GET("/tweets/:id/like_status", interactionHandler.LikeStatus)
			protected.GET("/tweets/:id/likes", interactionHandler.Likes)
			protected.POST("/tweets/:id/retweet", interactionHandler.Retweet)
			protected.DELETE("/tweets/:id/unretweet", interactionHandler.Unretweet)
			protected.GET("/tweets/:id/retweet_status", interactionHandler.RetweetStatus)
			protected.POST("/comments", interactionHandler.CreateComment)
			protected.GET("/tweets/:id/comments", interactionHandler.Comments)
			protected.DELETE("/comments/:id", interactionHandler.DeleteComment)
			protected.POST("/tweets/:id/bookmark", interactionHandler.Bookmark)
			protected.DELETE("/tweets/:id/unbookmark", interactionHandler.Unbookmark)
			protected.GET("/bookmarks", interactionHandler.Bookmarks)

			// 媒体上传
			protected.POST("/media/upload", mediaHandler.Upload)

			// 通知相关
			protected.GET("/notifications", notificationHandler.List)
			protected.GET("/notifications/count", notificationHandler.UnreadCount)
			protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
			protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)

			// 表情反应
			protected.POST("/emotion", reactionHandler.Detect)
			protected.POST("/tweets/:id/reactions", reactionHandler.React)
			protected.DELETE("/tweets/:id/reactions", reactionHandler.Remove)
			protected.GET("/tweets/:id/reactions", reactionHandler.List)
			protected.GET("/tweets/:id/reactions/summary", reactionHandler.Summary)
		}
	}

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	if err := indexWorker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop index worker")
	}

	logger.Info("Server exited")
}

func init() {
	// 创建必要的目录
	dirs := []string{"logs", "uploads", "configs"}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Failed to create directory %s: %v", dir, err)
		}
	}

	// 创建默认配置文件（如果不存在）
	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "twitteruser"
  password: "twitterpass"
  dbname: "twitterclone"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 100
  min_idle_conns: 10

kafka:
  brokers:
    - "localhost:9092"
  topics:
    tweet_events: "tweet-events"
    user_events: "user-events"

jwt:
  secret: "your-secret-key-change-in-production"
  expire_time: 24h

media:
  upload_dir: "uploads"
  max_size: 10485760  # 10MB

cache:
  timeline_ttl: 1m
  count_ttl: 30s

emotion:
  base_url: "http://localhost:5000"
  timeout: 10s`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HediM1312/twitter-clone/internal/config"
	"github.com/HediM1312/twitter-clone/internal/repository"
	"github.com/HediM1312/twitter-clone/internal/services"
	"github.com/HediM1312/twitter-clone/internal/workers"
	"github.com/HediM1312/twitter-clone/pkg/cache"
	"github.com/HediM1312/twitter-clone/pkg/logger"
	"github.com/HediM1312/twitter-clone/pkg/queue"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	logger := logger.NewLogger()
	logger.Info("Starting Twitter Clone Worker...")

	// 初始化数据库
	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

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

	// 初始化Kafka消费者
	tweetEventsConsumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.TweetEvents, "index-worker-group")
	defer tweetEventsConsumer.Close()

	// 初始化仓库
	userRepo := repository.NewUserRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	hashtagRepo := repository.NewHashtagRepository(db.DB)

	// 初始化服务
	notificationService := services.NewNotificationService(notificationRepo, redisClient, &cfg.Cache, logger)

	// 初始化工作处理器
	indexWorker := workers.NewIndexWorker(hashtagRepo, userRepo, notificationService, redisClient, tweetEventsConsumer, logger)

	// 启动工作处理器
	go func() {
		if err := indexWorker.Start(ctx); err != nil {
			logger.WithError(err).Error("Index worker stopped with error")
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")

	// 优雅关闭
	_, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := indexWorker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop index worker")
	}

	logger.Info("Worker exited")
}

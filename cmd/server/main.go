package main

import (
	"go.uber.org/zap"

	"github.com/videoclub/rental/config"
	"github.com/videoclub/rental/internal/app"
	"github.com/videoclub/rental/internal/cache"
	"github.com/videoclub/rental/internal/database"
	"github.com/videoclub/rental/internal/handler"
	"github.com/videoclub/rental/internal/mq"

	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	var redisCache *cache.Cache
	if cfg.CacheURL != "" {
		redisCache, err = cache.New(cfg.CacheURL)
		if err != nil {
			logger.Fatal("failed to connect to cache", zap.Error(err))
		}
	}

	var mqConn *amqp.Connection
	if cfg.MQURL != "" {
		mqConn, err = mq.NewMQConn(cfg.MQURL)
		if err != nil {
			logger.Fatal("failed to connect to message queue", zap.Error(err))
		}
	}

	application := app.New(cfg, db, redisCache, mqConn, logger)
	if err := application.Init(); err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	r := handler.NewRouter(application)
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Wave_Social/internal/config"
	"Wave_Social/internal/consumer"
	"Wave_Social/internal/handler"
	"Wave_Social/internal/model"
	"Wave_Social/internal/pkg"
	"Wave_Social/internal/queue"
	"Wave_Social/internal/repository/mysql"
	"Wave_Social/internal/repository/redis"
	"Wave_Social/internal/router"
	"Wave_Social/internal/service"
	"Wave_Social/internal/ws"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config failed", "err", err)
		os.Exit(1)
	}

	if err = mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	// 连接redis
	if err = redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.AuthUser{},
		&model.User{},
		&model.Post{},
		&model.Reaction{},
		&model.Comment{},
		&model.Notification{},
		&model.Follow{},
	)

	dispatcher := queue.NewDispatcher(queue.KafkaConfig{Brokers: cfg.KafkaBrokers}, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	// 仓储
	authRepo := &mysql.AuthRepository{DB: mysql.DB}
	userRepo := &mysql.UserRepository{DB: mysql.DB}
	postRepo := &mysql.PostRepository{DB: mysql.DB}
	reactionRepo := &mysql.ReactionRepository{DB: mysql.DB}
	commentRepo := &mysql.CommentRepository{DB: mysql.DB}
	notificationRepo := &mysql.NotificationRepository{DB: mysql.DB}
	followRepo := &mysql.FollowRepository{DB: mysql.DB}

	userCache := redis.NewUserCache()
	postCache := redis.NewPostCache()
	reactionCache := redis.NewReactionCache()

	uploader := pkg.NewLocalUploader(cfg.UploadDir, cfg.ClientURL+"/images")

	// 服务
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo)
	authSvc := service.NewAuthService(authRepo, userCache, dispatcher, uploader, cfg.JWTSecret, cfg.ClientURL)
	postSvc := service.NewPostService(postCache, postRepo, dispatcher, hub, uploader)
	reactionSvc := service.NewReactionService(reactionCache, reactionRepo, dispatcher, hub)
	commentSvc := service.NewCommentService(postCache, commentRepo, dispatcher, hub)
	followSvc := service.NewFollowService(followRepo, userRepo, notificationSvc, dispatcher, hub)

	// 消费者
	consumers := []*consumer.Consumer{
		consumer.NewAuthConsumer(cfg.KafkaBrokers, authRepo, logger),
		consumer.NewUserConsumer(cfg.KafkaBrokers, userRepo, logger),
		consumer.NewPostConsumer(cfg.KafkaBrokers, postRepo, userRepo, logger),
		consumer.NewReactionConsumer(cfg.KafkaBrokers, reactionRepo, postRepo, reactionCache, userRepo, notificationSvc, dispatcher, logger),
		consumer.NewCommentConsumer(cfg.KafkaBrokers, commentRepo, postRepo, userRepo, notificationSvc, dispatcher, logger),
		consumer.NewEmailConsumer(cfg.KafkaBrokers, cfg.SMTP, nil, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, c := range consumers {
		go func(c *consumer.Consumer) {
			if err := c.Run(ctx); err != nil {
				logger.Error("consumer stopped", "err", err)
			}
		}(c)
	}

	reconciler := service.NewReconciler(postCache, reactionCache, postRepo, logger)
	go reconciler.Run(ctx)

	// Gin
	r := router.InitRouter(router.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Post:         handler.NewPostHandler(postSvc),
		Reaction:     handler.NewReactionHandler(reactionSvc),
		Comment:      handler.NewCommentHandler(commentSvc),
		Follow:       handler.NewFollowHandler(followSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		WS:           handler.NewWSHandler(hub, logger),
	}, cfg.JWTSecret)

	srv := &http.Server{Addr: cfg.Addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
			stop()
		}
	}()
	logger.Info("server started", "addr", cfg.Addr)

	<-ctx.Done()
	logger.Info("shutting down")

	// 先停止接收新请求，再排空在途任务，最后关生产者
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	for _, c := range consumers {
		if err := c.Close(); err != nil {
			logger.Error("consumer close error", "err", err)
		}
	}
	if err := dispatcher.Close(); err != nil {
		logger.Error("dispatcher close error", "err", err)
	}
}

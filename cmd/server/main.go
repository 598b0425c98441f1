package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	_ "medfeedback/docs"
	"medfeedback/internal/cache"
	"medfeedback/internal/categorizer"
	"medfeedback/internal/config"
	"medfeedback/internal/logging"
	"medfeedback/internal/repository"
	"medfeedback/internal/service"
	"medfeedback/internal/transport/rest"
	"medfeedback/internal/transport/ws"
)

// @title Patient Feedback API
// @version 1.0
// @description Hospital patient feedback collection and categorization
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return err
	}
	engine := categorizer.New(policy)
	logger.Info("categorizer policy loaded",
		zap.String("file", cfg.PolicyFile),
		zap.Int("positiveKeywords", len(policy.PositiveKeywords)),
		zap.Int("negativeKeywords", len(policy.NegativeKeywords)),
	)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		return err
	}
	logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))
	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Submissions live in Mongo unless a local SQLite file is configured
	var submissions repository.SubmissionRepo
	switch cfg.Storage {
	case config.StorageSQLite:
		sqliteRepo, err := repository.NewSQLiteSubmissionRepo(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer sqliteRepo.Close()
		submissions = sqliteRepo
	default:
		submissions = repository.NewSubmissionRepo(db)
	}
	logger.Info("submission storage ready", zap.String("storage", cfg.Storage))

	wsHub := ws.NewHub(logger)
	defer wsHub.Close()

	// Initialize services
	authSvc := service.NewAuthService(cfg, cache.NewOTPCache(rdb), logger)
	questionSvc := service.NewQuestionService(repository.NewDepartmentRepo(db), repository.NewQuestionRepo(db))
	feedbackSvc := service.NewFeedbackService(questionSvc, submissions, cache.NewStatsCache(rdb), cache.NewDraftCache(rdb), engine, logger)
	feedbackSvc.SetDraftTTL(cfg.DraftTTL)

	// wsHub implements service.Broadcaster
	feedbackSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:     authSvc,
		QuestionService: questionSvc,
		FeedbackService: feedbackSvc,
		WSHub:           wsHub,
		AllowedOrigins:  cfg.AllowedOrigins,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.Bool("otpEcho", cfg.OTPEcho))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}

package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"medfeedback/internal/catalog"
	"medfeedback/internal/config"
	"medfeedback/internal/logging"
	"medfeedback/internal/repository"
)

func main() {
	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	departments := repository.NewDepartmentRepo(db)
	questions := repository.NewQuestionRepo(db)

	for _, d := range catalog.Departments() {
		if err := departments.Upsert(ctx, &d); err != nil {
			logger.Fatal("failed to seed department", zap.String("id", d.ID), zap.Error(err))
		}
	}
	for _, q := range catalog.Questions() {
		if err := questions.Upsert(ctx, &q); err != nil {
			logger.Fatal("failed to seed question", zap.String("id", q.ID), zap.Error(err))
		}
	}

	logger.Info("catalog seeded",
		zap.String("db", cfg.MongoDB),
		zap.Int("departments", len(catalog.Departments())),
		zap.Int("questions", len(catalog.Questions())),
	)
}

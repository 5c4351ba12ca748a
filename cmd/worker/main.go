// Package main runs the standalone print worker, draining the Redis queue
// towards the print server and the S3 archive.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ArielAmzalak/SenhasGF4/config"
	"github.com/ArielAmzalak/SenhasGF4/internal/worker"
	"github.com/ArielAmzalak/SenhasGF4/pkg/printer"
	"github.com/ArielAmzalak/SenhasGF4/pkg/queue"
	"github.com/ArielAmzalak/SenhasGF4/pkg/redis"
	"github.com/ArielAmzalak/SenhasGF4/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	printClient := printer.New(cfg.Print.ServerURL, cfg.Print.Token, logger)
	if printClient == nil {
		logger.Warn("print forwarding disabled; jobs will only be archived")
	}

	var s3Client *storage.S3
	if cfg.AWS.Region != "" && cfg.AWS.TicketsBucket != "" {
		s3Client, err = storage.NewS3(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			TicketsBucket:   cfg.AWS.TicketsBucket,
		}, logger)
		if err != nil {
			logger.Warn("s3 archive disabled", zap.Error(err))
		}
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)
	processor := worker.NewPrintProcessor(printClient, s3Client, jobQueue, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

// Package main runs the ticket distributor HTTP server with graceful
// shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ArielAmzalak/SenhasGF4/config"
	"github.com/ArielAmzalak/SenhasGF4/internal/clock"
	"github.com/ArielAmzalak/SenhasGF4/internal/issuer"
	"github.com/ArielAmzalak/SenhasGF4/internal/middleware"
	"github.com/ArielAmzalak/SenhasGF4/internal/ticketpdf"
	"github.com/ArielAmzalak/SenhasGF4/internal/tickets"
	"github.com/ArielAmzalak/SenhasGF4/internal/worker"
	"github.com/ArielAmzalak/SenhasGF4/pkg/printer"
	"github.com/ArielAmzalak/SenhasGF4/pkg/queue"
	"github.com/ArielAmzalak/SenhasGF4/pkg/redis"
	"github.com/ArielAmzalak/SenhasGF4/pkg/response"
	"github.com/ArielAmzalak/SenhasGF4/pkg/sheets"
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
	store, err := sheets.New(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.ServiceAccountJSON, logger)
	if err != nil {
		logger.Fatal("sheets", zap.Error(err))
	}

	loc, err := time.LoadLocation(cfg.Sheets.Timezone)
	if err != nil {
		logger.Warn("timezone not found, using local time", zap.String("tz", cfg.Sheets.Timezone))
		loc = time.Local
	}

	renderer := ticketpdf.NewRenderer(cfg.PDF.LogoPath, logger)
	svc := issuer.NewService(store, renderer, clock.NewSystem(), issuer.Config{
		AreasSheet:         cfg.Sheets.AreasSheet,
		NeighborhoodsSheet: cfg.Sheets.NeighborhoodsSheet,
		Location:           loc,
	}, logger)

	printClient := printer.New(cfg.Print.ServerURL, cfg.Print.Token, logger)
	if printClient == nil {
		logger.Info("print forwarding disabled (PRINT_SERVER_URL/PRINT_TOKEN not set)")
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

	// Print path: Redis queue + background worker when configured, otherwise
	// synchronous forwarding from the request path.
	var printQueue tickets.PrintQueue
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if printClient != nil || s3Client != nil {
		if cfg.Redis.Addr != "" {
			rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
			if err != nil {
				logger.Fatal("redis", zap.Error(err))
			}
			defer rdb.Close()
			jobQueue := queue.NewQueue(rdb.Client, logger)
			printQueue = jobQueue
			processor := worker.NewPrintProcessor(printClient, s3Client, jobQueue, logger)
			go processor.Run(workerCtx)
			logger.Info("print worker started")
		} else {
			printQueue = worker.NewDirect(printClient, s3Client, logger)
		}
	}

	handler := tickets.NewHandler(svc, printQueue, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/areas", handler.ListAreas)
	router.GET("/neighborhoods", handler.ListNeighborhoods)
	router.POST("/tickets", handler.Submit)
	router.POST("/tickets/preview", handler.Preview)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

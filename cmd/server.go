package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/cache"
	config "task-tracker.com/task-tracker/internal/configs"
	httpapi "task-tracker.com/task-tracker/internal/http"
	repository "task-tracker.com/task-tracker/internal/repositories"
	"task-tracker.com/task-tracker/internal/services"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  "Starts the task tracker HTTP API and the lifecycle automation sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		summaryCache := cache.NewRedisCache(redisClient, cfg.RedisKeyPrefix)

		db := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(db)

		taskService := services.NewTaskService(taskRepo, summaryCache)
		automationService := services.NewAutomationService(
			taskRepo,
			summaryCache,
			time.Duration(cfg.RetentionDays)*24*time.Hour,
			time.Duration(cfg.SweepIntervalSeconds)*time.Second,
		)
		summaryService := services.NewSummaryService(
			taskRepo,
			summaryCache,
			cfg.BriefSize,
			time.Duration(cfg.SummaryCacheTTLSeconds)*time.Second,
		)

		e := echo.New()

		handler := httpapi.NewHandler(taskService, automationService, summaryService)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		automationService.Shutdown(ctx)

		log.Println("HTTP server and automation sweep shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

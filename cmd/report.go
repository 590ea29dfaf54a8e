package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-tracker.com/task-tracker/internal/configs"
	"task-tracker.com/task-tracker/internal/engine"
	"task-tracker.com/task-tracker/internal/render"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the markdown task report",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		db := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(db)

		tasks, err := taskRepo.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		report := engine.BuildReport(tasks, time.Now().UTC())
		fmt.Println(render.MarkdownReport(report))
		return nil
	},
}

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Print the daily brief",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		db := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(db)

		tasks, err := taskRepo.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		brief := engine.BuildDailyBrief(tasks, time.Now().UTC(), cfg.BriefSize)
		fmt.Println(render.BriefText(brief))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(briefCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"neuromotion/internal/config"
	"neuromotion/internal/database"
	logger "neuromotion/internal/logging"
	"neuromotion/internal/models"
	"neuromotion/internal/repository"
	"neuromotion/internal/router"
)

// NewServeCmd creates the 'serve' command running the scoring service.
func NewServeCmd() *cobra.Command {
	var configRoot string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring service",
		Long: `Start the HTTP scoring service.

The service exposes the analysis endpoints the assessment client talks to:
  POST /api/v1/analyze/survey   score symptom survey answers
  POST /api/v1/analyze/taps     score finger tapping intervals
  POST /api/v1/analyze/spiral   score an uploaded spiral drawing
  POST /api/v1/aggregate        combine sub-scores into a stored session
  GET  /api/v1/sessions         list stored sessions
  GET  /api/v1/statistics       summarize stored sessions`,
		Example: `  neuromotion serve
  neuromotion serve --config-root /srv/neuromotion
  NEUROMOTION_SERVER_PORT=9000 neuromotion serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configRoot)
		},
	}

	cmd.Flags().StringVarP(&configRoot, "config-root", "c", ".", "directory containing the config/ folder")
	return cmd
}

func runServe(configRoot string) error {
	if err := config.Init(configRoot); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Init(config.Conf.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	config.Watch(log)

	// Initialize Database
	database.Init(log)

	// Load the questionnaire at startup so survey weights are fixed for
	// the lifetime of the process.
	questionnaire, err := models.LoadQuestionnaire(config.Conf.Assessment.QuestionsPath)
	if err != nil {
		log.Fatal("Failed to load questionnaire", zap.Error(err))
	}

	store := repository.NewStore(database.DB)
	r := router.Setup(log, store, questionnaire)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Scoring service listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
	return nil
}

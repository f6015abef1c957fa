package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"neuromotion/internal/config"
	"neuromotion/internal/history"
	logger "neuromotion/internal/logging"
	"neuromotion/internal/scoring"
)

// NewHistoryCmd creates the 'history' command summarizing stored sessions.
func NewHistoryCmd() *cobra.Command {
	var configRoot string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored sessions, statistics and the risk trend",
		Long: `Fetch stored sessions and cross-session statistics from the
scoring service and print the recent progression, the risk level
distribution and the overall risk trend.`,
		Example: `  neuromotion history
  neuromotion history --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(configRoot, limit)
		},
	}

	cmd.Flags().StringVarP(&configRoot, "config-root", "c", ".", "directory containing the config/ folder")
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "maximum sessions to fetch")
	return cmd
}

func runHistory(configRoot string, limit int) error {
	if err := config.Init(configRoot); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Console(zapcore.WarnLevel)
	defer log.Sync()

	client := scoring.NewClient(
		config.Conf.Scoring.BaseURL,
		time.Duration(config.Conf.Scoring.TimeoutSeconds)*time.Second,
		log,
	)

	view := history.NewView(client, limit, log)
	if err := view.Load(context.Background()); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	comparison := view.Comparison()
	if len(comparison) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Println("Recent sessions (oldest first):")
	fmt.Println()
	fmt.Printf("  %-6s %-18s %8s  %s\n", "ID", "Timestamp", "Risk", "Level")
	for _, s := range comparison {
		fmt.Printf("  %-6d %-18s %8.2f  %s\n",
			s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.OverallRisk, s.RiskLevel)
	}

	report := view.Report()
	fmt.Println()
	fmt.Printf("Sessions analyzed: %d\n", report.Statistics.TotalSessions)
	fmt.Printf("Average risk:      %.2f (min %.2f, max %.2f)\n",
		report.Statistics.AvgRisk, report.Statistics.MinRisk, report.Statistics.MaxRisk)
	if len(report.RiskDistribution) > 0 {
		fmt.Println("Risk levels:")
		for _, bucket := range report.RiskDistribution {
			fmt.Printf("  %-15s %d\n", bucket.RiskLevel, bucket.Count)
		}
	}

	fmt.Println()
	fmt.Printf("Risk trend: %s\n", view.TrendDirection())
	return nil
}

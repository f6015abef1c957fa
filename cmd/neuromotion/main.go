/*
Package main is the entry point for the neuromotion CLI.

neuromotion bundles the motor-symptom screening pipeline: the scoring
service and the client commands that drive assessments against it.

Usage:
  neuromotion [command]

Available Commands:
  serve       Run the scoring service
  assess      Replay a recorded assessment against the scoring service
  history     Show stored sessions, statistics and the risk trend
  help        Help about any command

Examples:
  # Run the scoring service
  neuromotion serve

  # Replay a recorded assessment
  neuromotion assess config/sample-session.yaml

  # Review stored sessions
  neuromotion history --limit 10
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"neuromotion/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "neuromotion",
		Short: "Motor-symptom screening pipeline",
		Long: `neuromotion runs guided motor-symptom assessments and scores them.

An assessment combines three instruments: a symptom survey, a ten second
finger tapping test and a spiral drawing. Each capture is scored by the
service, the sub-scores are aggregated into an overall risk with a
recommendation, and every completed session is stored for trend review.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewAssessCmd())
	rootCmd.AddCommand(cli.NewHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

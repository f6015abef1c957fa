package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"neuromotion/internal/capture"
	"neuromotion/internal/config"
	logger "neuromotion/internal/logging"
	"neuromotion/internal/models"
	"neuromotion/internal/scoring"
	"neuromotion/internal/wizard"
)

type recordedPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type recordedStroke struct {
	Points []recordedPoint `yaml:"points"`
}

// recording is a captured assessment run: the survey answers, the tap
// press times relative to the countdown start, and the spiral strokes in
// canvas coordinates.
type recording struct {
	Survey map[string]int `yaml:"survey"`
	Taps   struct {
		PressedAtMs []int64 `yaml:"pressed_at_ms"`
	} `yaml:"taps"`
	Spiral struct {
		Strokes []recordedStroke `yaml:"strokes"`
	} `yaml:"spiral"`
}

// NewAssessCmd creates the 'assess' command that replays a recorded
// assessment through the full capture pipeline.
func NewAssessCmd() *cobra.Command {
	var configRoot string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "assess <recording.yaml>",
		Short: "Replay a recorded assessment against the scoring service",
		Long: `Run a recorded assessment through the capture pipeline.

The recording file holds one full run: survey answers, tap press times
and spiral strokes. Each instrument is replayed through its capture,
submitted to the scoring service, and the three sub-scores are
aggregated into a stored session.`,
		Example: `  neuromotion assess config/sample-session.yaml
  neuromotion assess run.yaml --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(args[0], configRoot, verbose)
		},
	}

	cmd.Flags().StringVarP(&configRoot, "config-root", "c", ".", "directory containing the config/ folder")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every scoring exchange")
	return cmd
}

func runAssess(recordingPath, configRoot string, verbose bool) error {
	if err := config.Init(configRoot); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	log := logger.Console(level)
	defer log.Sync()

	rec, err := loadRecording(recordingPath)
	if err != nil {
		return err
	}

	questionnaire, err := models.LoadQuestionnaire(config.Conf.Assessment.QuestionsPath)
	if err != nil {
		return fmt.Errorf("failed to load questionnaire: %w", err)
	}

	client := scoring.NewClient(
		config.Conf.Scoring.BaseURL,
		time.Duration(config.Conf.Scoring.TimeoutSeconds)*time.Second,
		log,
	)

	ctx := context.Background()
	wiz := wizard.New(client, log)
	if err := wiz.Begin(); err != nil {
		return err
	}

	surveyScore, err := replaySurvey(ctx, rec, questionnaire, client)
	if err != nil {
		return fmt.Errorf("survey step failed: %w", err)
	}
	if err := wiz.Advance(ctx, surveyScore); err != nil {
		return err
	}

	tapScore, err := replayTaps(ctx, rec, client)
	if err != nil {
		return fmt.Errorf("tap step failed: %w", err)
	}
	if err := wiz.Advance(ctx, tapScore); err != nil {
		return err
	}

	spiralScore, err := replaySpiral(ctx, rec, client)
	if err != nil {
		return fmt.Errorf("spiral step failed: %w", err)
	}
	if err := wiz.Advance(ctx, spiralScore); err != nil {
		return err
	}

	printSession(wiz.Session(), surveyScore, tapScore, spiralScore)
	return nil
}

func loadRecording(path string) (*recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	var rec recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recording: %w", err)
	}
	return &rec, nil
}

func replaySurvey(ctx context.Context, rec *recording, questionnaire *models.Questionnaire, client *scoring.Client) (*scoring.SubScore, error) {
	survey := capture.NewSurvey(questionnaire, client)
	for id, severity := range rec.Survey {
		if err := survey.RecordAnswer(id, severity); err != nil {
			return nil, err
		}
	}
	return survey.Submit(ctx)
}

func replayTaps(ctx context.Context, rec *recording, client *scoring.Client) (*scoring.SubScore, error) {
	base := time.Now()
	now := base
	tap := capture.NewTapCapture(client, func() time.Time { return now })
	if err := tap.Start(); err != nil {
		return nil, err
	}

	// Advance the countdown exactly as it ran live, so presses past the
	// window are dropped the same way.
	ticked := int64(0)
	for _, ms := range rec.Taps.PressedAtMs {
		now = base.Add(time.Duration(ms) * time.Millisecond)
		for s := ms / 1000; ticked < s; ticked++ {
			tap.Tick()
		}
		tap.RegisterTap()
	}
	if tap.State() == capture.TapError {
		return nil, tap.Err()
	}
	if err := tap.Finish(); err != nil {
		return nil, err
	}
	return tap.Submit(ctx)
}

func replaySpiral(ctx context.Context, rec *recording, client *scoring.Client) (*scoring.SubScore, error) {
	spiral := capture.NewSpiralCapture(client)
	for _, stroke := range rec.Spiral.Strokes {
		if len(stroke.Points) == 0 {
			continue
		}
		spiral.BeginStroke(capture.Point{X: stroke.Points[0].X, Y: stroke.Points[0].Y})
		for _, p := range stroke.Points[1:] {
			spiral.ExtendStroke(capture.Point{X: p.X, Y: p.Y})
		}
		spiral.EndStroke()
	}
	return spiral.Submit(ctx)
}

func printSession(session *models.Session, survey, taps, spiral *scoring.SubScore) {
	fmt.Println("Assessment complete.")
	fmt.Println()
	fmt.Printf("  Survey score:   %6.2f\n", survey.Score)
	fmt.Printf("  Tap score:      %6.2f\n", taps.Score)
	fmt.Printf("  Spiral score:   %6.2f\n", spiral.Score)
	fmt.Println()
	fmt.Printf("  Overall risk:   %6.2f  (%s)\n", session.OverallRisk, session.RiskLevel)
	fmt.Printf("  Session id:     %d\n", session.ID)
	fmt.Println()
	fmt.Println("  " + session.Recommendation)
}

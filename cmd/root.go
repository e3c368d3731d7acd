package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"transcriptview/internal/config"
	"transcriptview/internal/highlight"
	"transcriptview/internal/transcript"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "transcriptview",
	Short: "View time-aligned transcripts and clip word ranges from them",
	Long: `Transcriptview renders a time-aligned transcript in the terminal, follows a
simulated playhead word by word and lets you create and resize highlight clips
by dragging over the text.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(os.Stderr)
	},
}

func logLevel() slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return level
}

func setupLogging(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel(),
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with TRANSCRIPTVIEW_* settings")
}

// loadConfig returns the defaults overridden by the env file and the
// environment.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := config.LoadEnv(cfg, envFile); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func loadTranscript(path string) (*transcript.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	t, err := transcript.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func loadHighlights(path string) ([]highlight.Highlight, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open highlights: %w", err)
	}
	defer f.Close()

	hs, err := highlight.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hs, nil
}

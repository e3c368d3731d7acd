package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"transcriptview/internal/viewer"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <transcript.json>",
	Short: "Open a transcript in the interactive viewer",
	Long: `Open a transcript in the terminal viewer. Drag over words to select them,
press Enter or click the "Make clip" label to create a clip, drag the [ ]
handles of a clip to resize it and press Ctrl+C to copy the selection.

Keys: space play/pause, left/right seek, j jump to the current word,
r toggle read-only, d delete the hovered clip, q quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

var (
	highlightsPath string
	startAt        float64
	startWord      string
	play           bool
	readOnly       bool
	logFile        string
	viewWidth      int
)

func init() {
	viewCmd.Flags().StringVar(&highlightsPath, "highlights", "", "JSON file with existing highlights")
	viewCmd.Flags().Float64Var(&startAt, "at", 0, "start playback at this timestamp in seconds")
	viewCmd.Flags().StringVar(&startWord, "word", "", "start at this word in the first sentence ending after --at")
	viewCmd.Flags().BoolVar(&play, "play", false, "start playing immediately")
	viewCmd.Flags().BoolVar(&readOnly, "read-only", false, "disable creating and editing clips")
	viewCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file (the terminal is taken by the viewer)")
	viewCmd.Flags().IntVar(&viewWidth, "width", 0, "layout width in cells (default: terminal width)")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("read-only") {
		cfg.ReadOnly = readOnly
	}
	if viewWidth > 0 {
		cfg.Layout.Width = viewWidth
	}

	t, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	hs, err := loadHighlights(highlightsPath)
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	setupLogging(out)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	// Setup signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := viewer.New(t, viewer.Options{
		Config:     cfg,
		Highlights: hs,
		At:         startAt,
		Word:       startWord,
		Play:       play,
		Logger:     slog.Default(),
	})
	if err := session.Run(ctx, screen); err != nil {
		return err
	}

	setupLogging(os.Stderr)
	if !quiet {
		slog.Info("viewer closed", "highlights", len(session.Highlights()))
	}
	return nil
}

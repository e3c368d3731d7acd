package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"transcriptview/internal/highlight"
	"transcriptview/internal/transcript"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print <transcript.json>",
	Short: "Print a transcript as plain text with its clips",
	Long: `Print the transcript paragraph by paragraph, word-wrapped, with clip ranges
marked by brackets, followed by the list of clips in color-group order.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrint,
}

var printWidth int

func init() {
	printCmd.Flags().StringVar(&highlightsPath, "highlights", "", "JSON file with highlights to mark")
	printCmd.Flags().IntVarP(&printWidth, "width", "w", 80, "wrap width")
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	t, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	hs, err := loadHighlights(highlightsPath)
	if err != nil {
		return err
	}
	return renderTranscript(cmd.OutOrStdout(), t, hs, printWidth)
}

// renderTranscript writes t wrapped to width, bracketing every highlight.
func renderTranscript(w io.Writer, t *transcript.Transcript, hs []highlight.Highlight, width int) error {
	idx := transcript.NewIndex(t)
	var valid []highlight.Highlight
	opens, closes := make(map[int]int), make(map[int]int)
	for _, h := range hs {
		start, end := min(h.StartWordOffset, h.EndWordOffset), max(h.StartWordOffset, h.EndWordOffset)
		if _, ok := idx.Word(start); !ok {
			slog.Warn("skipping highlight", "id", h.ID, "word", start)
			continue
		}
		if _, ok := idx.Word(end); !ok {
			slog.Warn("skipping highlight", "id", h.ID, "word", end)
			continue
		}
		opens[start]++
		closes[end]++
		valid = append(valid, highlight.Highlight{ID: h.ID, StartWordOffset: start, EndWordOffset: end})
	}

	for i, p := range t.Paragraphs {
		if len(p.Sentences) == 0 {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s\n", transcript.FormatSeconds(p.Sentences[0].Start()), t.Speakers[p.SpeakerID].Name)

		var words []string
		for _, s := range p.Sentences {
			for _, word := range s.Words {
				words = append(words, strings.Repeat("[", opens[word.ID])+word.Text+strings.Repeat("]", closes[word.ID]))
			}
		}
		body := wordwrap.String(strings.Join(words, " "), max(width-2, 10))
		if _, err := fmt.Fprintln(w, indent.String(body, 2)); err != nil {
			return err
		}
	}

	if len(valid) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Clips:")
	for _, a := range highlight.AssignColors(valid) {
		first, _ := idx.Word(a.Highlight.StartWordOffset)
		last, _ := idx.Word(a.Highlight.EndWordOffset)
		_, err := fmt.Fprintf(w, "  %-12s %s  %s +%s  %q\n",
			a.Highlight.ID, a.Color.Highlight,
			transcript.FormatSeconds(first.StartTime),
			transcript.FormatSeconds(last.EndTime-first.StartTime),
			idx.TextBetween(first.ID, last.ID))
		if err != nil {
			return err
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"strconv"

	"transcriptview/internal/transcript"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate <transcript.json> <timestamp>",
	Short: "Print the word spoken at a timestamp",
	Long: `Print the word under the playhead at the given timestamp, its sentence and
its character span. With --word, resolve a deep link instead: print the start
time of that word in the first sentence ending after the timestamp.`,
	Args: cobra.ExactArgs(2),
	RunE: runLocate,
}

var locateWord string

func init() {
	locateCmd.Flags().StringVar(&locateWord, "word", "", "resolve this word as a deep link")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	ts, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", args[1], err)
	}
	t, err := loadTranscript(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if locateWord != "" {
		at := transcript.TimestampForWord(t, locateWord, ts)
		if at == 0 {
			return fmt.Errorf("word %q not found after %s", locateWord, transcript.FormatSeconds(ts))
		}
		fmt.Fprintf(out, "%g\n", at)
		return nil
	}

	aw, ok := transcript.Locate(t, ts)
	if !ok {
		return fmt.Errorf("no word starts at or before %gs", ts)
	}
	fmt.Fprintf(out, "word %d %q [%g, %g]\n", aw.Word.ID, aw.Word.Text, aw.Word.StartTime, aw.Word.EndTime)
	fmt.Fprintf(out, "sentence %d chars [%d, %d): %s\n",
		aw.Sentence.ID, aw.StartOffset, aw.EndOffset, transcript.SentenceText(aw.Sentence))
	return nil
}

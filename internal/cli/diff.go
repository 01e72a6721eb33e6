package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vpath/internal/engine"
)

var (
	diffAgainst int
	diffStat    bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <uri>",
	Short: "Show how the winning copy of a file differs from the one it shadows",
	Long: `Compare the copy of a file that wins resolution with a lower-priority
copy of the same URI. The patch turns the shadowed copy into the winner.

--against picks which shadowed copy to compare with, 1 being the next match
in priority order.`,
	Example: `  vpath diff theme://page.html
  vpath diff --against 2 theme://css/site.css`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeURI,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Diff(cmd.Context(), engine.DiffRequest{URI: args[0], Against: diffAgainst})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}
		formatDiff(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	diffCmd.Flags().IntVar(&diffAgainst, "against", 1, "Shadowed copy to compare with, counted in priority order")
	diffCmd.Flags().BoolVar(&diffStat, "stat", false, "Show only the change summary")
}

func formatDiff(w io.Writer, result *engine.DiffResult) {
	switch result.Status {
	case "unshadowed":
		PrintEmptyState(w, result.URI+" does not shadow another copy")
		return
	case "identical":
		PrintSuccess(w, result.URI+" is identical to the copy it shadows")
		printDiffPaths(w, result)
		return
	}

	printDiffPaths(w, result)
	_, _ = fmt.Fprintln(w)
	printDiffFileHeader(w, result)
	if !diffStat {
		printUnifiedDiff(w, result.UnifiedDiff)
	}

	// Color-coded summary line
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprint(w, "  ")
	_, _ = fmt.Fprint(w, "1 file changed")
	if result.Additions > 0 {
		_, _ = successColor.Fprintf(w, ", %s(+)", PrintCount(result.Additions, "insertion", "insertions"))
	}
	if result.Deletions > 0 {
		_, _ = errorColor.Fprintf(w, ", %s(-)", PrintCount(result.Deletions, "deletion", "deletions"))
	}
	_, _ = fmt.Fprintln(w)
}

func printDiffPaths(w io.Writer, result *engine.DiffResult) {
	_, _ = dimColor.Fprint(w, "  winner: ")
	_, _ = infoColor.Fprintln(w, result.Winner)
	_, _ = dimColor.Fprint(w, "  shadows: ")
	_, _ = infoColor.Fprintln(w, result.Shadowed)
}

func printDiffFileHeader(w io.Writer, result *engine.DiffResult) {
	_, _ = warningColor.Fprint(w, "  M ")
	_, _ = headerColor.Fprint(w, result.URI)

	if result.Additions > 0 {
		_, _ = successColor.Fprintf(w, "  +%d", result.Additions)
	}
	if result.Deletions > 0 {
		_, _ = errorColor.Fprintf(w, "  -%d", result.Deletions)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = dimColor.Fprintln(w, "  "+strings.Repeat("─", 50))
}

func printUnifiedDiff(w io.Writer, diffText string) {
	lines := strings.Split(diffText, "\n")
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			continue
		}

		switch {
		// Already shown in the file header
		case strings.HasPrefix(line, "diff --git "),
			strings.HasPrefix(line, "+++ "),
			strings.HasPrefix(line, "--- "):
			continue
		case strings.HasPrefix(line, "@@"):
			_, _ = infoColor.Fprintf(w, "  %s\n", line)
		case strings.HasPrefix(line, "+"):
			_, _ = successColor.Fprintf(w, "  %s\n", line)
		case strings.HasPrefix(line, "-"):
			_, _ = errorColor.Fprintf(w, "  %s\n", line)
		default:
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

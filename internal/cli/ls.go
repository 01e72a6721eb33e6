package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/vpath/internal/engine"
)

var lsRecursive bool

var lsCmd = &cobra.Command{
	Use:   "ls <uri>",
	Short: "List a directory merged across every registered location",
	Long: `List the merged contents of a directory URI.

Every registered directory that provides the URI contributes its entries.
A name present in several of them is listed once, from the highest-priority
directory. Files at the URI itself are skipped.`,
	Example: `  vpath ls theme://
  vpath ls -R theme://css`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeURI,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.List(cmd.Context(), engine.ListRequest{
			URI:       args[0],
			Recursive: lsRecursive,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		if len(result.Entries) == 0 {
			PrintEmptyState(out, "No entries")
			return nil
		}

		prefix := result.URI
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		rows := make([][]string, 0, len(result.Entries))
		for _, e := range result.Entries {
			name := strings.TrimPrefix(e.URI, prefix)
			size := formatSize(e.Size)
			if e.Dir {
				name = dirColor.Sprint(name + "/")
				size = "-"
			}
			rows = append(rows, []string{name, size, e.Path})
		}
		PrintTable(out, []string{"NAME", "SIZE", "PATH"}, rows)
		PrintInfo(out, "\n  "+PrintCount(len(result.Entries), "entry", "entries"))
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "R", false, "List subdirectories recursively")
}

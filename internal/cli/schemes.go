package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "Show registered schemes and their paths",
	Long: `Show every registered scheme. Prefixes are listed in the order they are
tried (longest first) and their entries in priority order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		result, err := eng.Schemes(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintLabelValue(out, "Base", result.Base)
		for _, s := range result.Schemes {
			PrintSection(out, s.Name+"://")
			for _, p := range s.Prefixes {
				prefix := p.Prefix
				if prefix == "" {
					prefix = "(root)"
				}
				PrintLabelValue(out, "Prefix", prefix)
				entries := make([]string, len(p.Entries))
				for i, e := range p.Entries {
					if e == "" {
						e = "."
					}
					entries[i] = e
				}
				PrintNumberedList(out, entries, 2)
			}
		}
		return nil
	},
}

// completeURI offers "scheme://" for every registered scheme, and the merged
// directory listing once a scheme has been typed.
func completeURI(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	eng, err := newEngine()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	loc := eng.Locator()

	if !strings.Contains(toComplete, "://") {
		var out []string
		for _, name := range loc.Schemes() {
			if strings.HasPrefix(name, toComplete) {
				out = append(out, name+"://")
			}
		}
		return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}

	dir := toComplete
	if i := strings.LastIndex(toComplete, "/"); i >= 0 {
		dir = toComplete[:i+1]
	}
	it, err := loc.Iterator(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer it.Close()

	var out []string
	for e, err := range it.All() {
		if err != nil {
			break
		}
		candidate := e.URI()
		if e.IsDir() {
			candidate += "/"
		}
		if strings.HasPrefix(candidate, toComplete) {
			out = append(out, candidate)
		}
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

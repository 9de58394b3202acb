package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Long: `List every built-in rule with the attribute that enables it.

Remote rules (unique, exists) need --remote on validate.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RULE\tATTRIBUTE\tTRAITS\tMESSAGE")
		for _, r := range catalog() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, formguard.NormalizeName(r.Name), traits(r), r.Message)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

// catalog lists every rule, including remote ones. The remote rules are
// never evaluated here, so they get no store.
func catalog() formguard.RuleSet {
	return append(rules.All(), rules.Remote(nil)...)
}

func traits(r formguard.Rule) string {
	var out []string
	if r.Type != "" {
		out = append(out, "type="+r.Type)
	}
	if r.IsAsync() {
		out = append(out, "async")
	}
	if r.ChecksRequired {
		out = append(out, "required")
	}
	if r.ChecksTarget {
		out = append(out, "cross-field")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}

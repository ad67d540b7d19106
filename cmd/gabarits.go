package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var gabaritsCmd = &cobra.Command{
	Use:   "gabarits",
	Short: "Inspect the authored gabarit files",
}

var gabaritsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded gabarits by chapter and exercise kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		entries := a.Gabarits.Entries()
		if len(entries) == 0 {
			fmt.Fprintf(out, "No gabarits found in %s.\n", a.Config.GabaritDir)
			return nil
		}

		fmt.Fprintf(out, "%-24s  %-22s  %-9s  %s\n", "Chapter", "Kind", "Templates", "Styles")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, e := range entries {
			total := 0
			var styles []string
			for _, st := range e.Styles() {
				total += len(e.Templates[st])
				styles = append(styles, string(st))
			}
			fmt.Fprintf(out, "%-24s  %-22s  %-9d  %s\n",
				truncate(e.Chapter, 24), truncate(e.Kind, 22), total, strings.Join(styles, ", "))
		}
		return nil
	},
}

func init() {
	gabaritsCmd.AddCommand(gabaritsListCmd)
}

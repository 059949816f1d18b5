package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/mindit-cli/internal/domain"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List the relaxation activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		acts := domain.Activities()

		if jsonOutput {
			items := make([]map[string]string, 0, len(acts))
			for _, a := range acts {
				items = append(items, map[string]string{
					"name":  string(a.Kind),
					"icon":  a.Icon,
					"color": app.config.Theme.ActivityColor(a.Kind),
				})
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}

		for _, a := range acts {
			fmt.Fprintf(out, "  %s  %s\n", a.Icon, a.Kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(activitiesCmd)
}

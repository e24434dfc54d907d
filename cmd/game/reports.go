package main

import (
	"encoding/json"
	"fmt"

	"go-path-defense/internal/repositories/reports"

	"github.com/spf13/cobra"
)

var (
	reportsLimit int
	reportsJSON  bool
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse stored benchmark reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent reports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		repo, closeRepo, err := newRepository(cmd.Context(), env.settings.Storage, env.log)
		if err != nil {
			return err
		}
		defer closeRepo()

		list, err := repo.List(cmd.Context(), reports.ListInput{Limit: reportsLimit})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if reportsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "no reports")
			return nil
		}
		for _, r := range list {
			fmt.Fprintf(out, "%-32s %-10s spawned=%-7d peak=%-6d avg=%-10s finished=%t\n",
				r.ID, r.Level, r.TotalSpawned, r.PeakActive, r.AvgTick, r.Finished)
		}
		return nil
	},
}

func init() {
	reportsListCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "how many reports to show")
	reportsListCmd.Flags().BoolVar(&reportsJSON, "json", false, "print JSON")
	reportsCmd.AddCommand(reportsListCmd)
}

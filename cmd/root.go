package cmd

import (
	"github.com/learnpath/learnpath/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnpath",
	Short: "Personalized learning path recommender",
	Long:  "Learnpath — terminal app that tracks topic mastery and recommends what to study next.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNPATH_DB env var)")
	rootCmd.PersistentFlags().String("topics", "", "Path to a topics JSON file (overrides the built-in catalog)")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(masteryCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LEARNPATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

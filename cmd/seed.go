package cmd

import (
	"fmt"

	"github.com/learnpath/learnpath/internal/store"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo learners with sample activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := store.SeedDemo(ctx, st); err != nil {
			return err
		}
		fmt.Println("Demo learners created: alice, bob, charlie.")
		return nil
	},
}

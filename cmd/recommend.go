package cmd

import (
	"fmt"

	"github.com/learnpath/learnpath/internal/recommend"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print recommended next topics for a learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		source, _ := cmd.Flags().GetString("source")
		k, _ := cmd.Flags().GetInt("top")

		s, err := openState(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		engine, err := recommend.NewEngine(s.graph, recommend.ConfigFromEnv())
		if err != nil {
			return err
		}

		snap := s.mastery.Snapshot()

		var recs []recommend.Recommendation
		var notices []string
		switch source {
		case "rule":
			recs, err = engine.RuleOnly(user, snap, k)
		case "cf":
			recs, err = engine.CollaborativeOnly(user, snap, k)
		case "hybrid":
			var result *recommend.Result
			result, err = engine.Recommend(user, snap, k)
			if result != nil {
				recs = result.Recommendations
				notices = result.Notices
			}
		default:
			return fmt.Errorf("unknown source %q (want rule, cf, or hybrid)", source)
		}
		if err != nil {
			return err
		}

		if len(recs) == 0 && len(notices) == 0 {
			fmt.Println("Nothing to recommend right now.")
			return nil
		}
		for i, rec := range recs {
			name := rec.Topic
			if t, err := s.graph.Topic(rec.Topic); err == nil {
				name = t.Name
			}
			fmt.Printf("%d. %-32s %.2f  [%s]\n", i+1, name, rec.Score, rec.Source)
			if rec.Rationale != "" {
				fmt.Printf("   %s\n", rec.Rationale)
			}
		}
		for _, n := range notices {
			fmt.Println("note:", n)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringP("user", "u", "", "Learner ID")
	recommendCmd.Flags().String("source", "hybrid", "Recommendation source: rule, cf, or hybrid")
	recommendCmd.Flags().IntP("top", "k", 0, "Number of recommendations (0 = default)")
	recommendCmd.MarkFlagRequired("user")
}

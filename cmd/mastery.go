package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var masteryCmd = &cobra.Command{
	Use:   "mastery",
	Short: "Show a learner's mastery scores per topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		s, err := openState(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records := s.mastery.UserRecords(user)
		if len(records) == 0 {
			fmt.Printf("No activity recorded for %s.\n", user)
			return nil
		}

		byTopic := make(map[string]int, len(records))
		for i, r := range records {
			byTopic[r.Topic] = i
		}

		fmt.Printf("%-32s %7s %9s %9s %9s\n", "TOPIC", "SCORE", "ATTEMPTS", "CORRECT", "REVISITS")
		for _, t := range s.graph.TopologicalOrder() {
			i, ok := byTopic[t.ID]
			if !ok {
				continue
			}
			r := records[i]
			fmt.Printf("%-32s %7.2f %9d %9d %9d\n", t.Name, r.Score, r.Attempts, r.Correct, r.Revisits)
		}
		return nil
	},
}

func init() {
	masteryCmd.Flags().StringP("user", "u", "", "Learner ID")
	masteryCmd.MarkFlagRequired("user")
}

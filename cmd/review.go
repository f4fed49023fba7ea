package cmd

import (
	"fmt"
	"time"

	"github.com/learnpath/learnpath/internal/recommend"
	"github.com/learnpath/learnpath/internal/review"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List mastered topics due for a spaced refresher",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		s, err := openState(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		planner := review.NewPlanner(recommend.ConfigFromEnv().MasteredThreshold)
		states := planner.Plan(s.mastery.UserRecords(user), s.mastery.UserEvents(user))
		if len(states) == 0 {
			fmt.Printf("No mastered topics to review for %s yet.\n", user)
			return nil
		}

		now := time.Now()
		topicName := func(id string) string {
			if t, err := s.graph.Topic(id); err == nil {
				return t.Name
			}
			return id
		}

		due := review.Due(states, now)
		if len(due) > 0 {
			fmt.Println("Due now:")
			for _, st := range due {
				fmt.Printf("  %-32s %s (%.0f days overdue)\n", topicName(st.Topic), st.Status(now), st.OverdueDays(now))
			}
		} else {
			fmt.Println("Nothing due for review.")
		}

		if upcoming := review.Upcoming(states, now); len(upcoming) > 0 {
			fmt.Println("Upcoming:")
			for _, st := range upcoming {
				fmt.Printf("  %-32s in %d days\n", topicName(st.Topic), st.DaysUntil(now))
			}
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringP("user", "u", "", "Learner ID")
	reviewCmd.MarkFlagRequired("user")
}

package cmd

import (
	"fmt"

	"github.com/learnpath/learnpath/internal/progress"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a learner's activity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		s, err := openState(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sum := progress.Summarize(s.mastery.UserEvents(user))
		if sum.TotalQuizzes == 0 && sum.TotalRevisits == 0 {
			fmt.Printf("No activity recorded for %s.\n", user)
			return nil
		}

		fmt.Printf("Quizzes:        %d (%d correct)\n", sum.TotalQuizzes, sum.TotalCorrect)
		fmt.Printf("Revisits:       %d\n", sum.TotalRevisits)
		fmt.Printf("Active days:    %d\n", sum.ActiveDays)
		fmt.Printf("Current streak: %d day(s), next milestone at %d\n", sum.CurrentStreak, progress.NextMilestone(sum.CurrentStreak))
		fmt.Printf("Longest streak: %d day(s)\n", sum.LongestStreak)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "", "Learner ID")
	statsCmd.MarkFlagRequired("user")
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/store"
	"github.com/spf13/cobra"
)

// keepSnapshots bounds how many mastery snapshots are retained per user.
const keepSnapshots = 10

var ingestCmd = &cobra.Command{
	Use:   "ingest <events.json>",
	Short: "Validate and record a batch of activity events for a learner",
	Long: "Ingest reads a JSON batch of quiz and revisit events, validates it " +
		"against the event schema, applies it all-or-nothing, and persists the " +
		"events plus the recomputed mastery snapshot.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, _ := cmd.Flags().GetString("user")

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		events, err := mastery.DecodeEvents(raw)
		if err != nil {
			return fmt.Errorf("decode events: %w", err)
		}

		s, err := openState(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := s.store.UserRepo().Get(ctx, user); errors.Is(err, store.ErrNotFound) {
			if _, err := s.store.UserRepo().Create(ctx, store.User{ID: user, Name: user}); err != nil {
				return fmt.Errorf("create user %s: %w", user, err)
			}
		} else if err != nil {
			return fmt.Errorf("look up user %s: %w", user, err)
		}

		// Recompute first; an invalid batch must not reach the database.
		if err := s.mastery.ApplyEvents(user, events); err != nil {
			return err
		}
		if err := s.store.EventRepo().AppendActivity(ctx, user, events); err != nil {
			return fmt.Errorf("persist events: %w", err)
		}

		records := s.mastery.UserRecords(user)
		if err := s.store.SnapshotRepo().Save(ctx, user, records); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		if err := s.store.SnapshotRepo().Prune(ctx, user, keepSnapshots); err != nil {
			fmt.Fprintf(os.Stderr, "warning: prune snapshots for %s: %v\n", user, err)
		}

		fmt.Printf("Recorded %d events for %s; %d topics now scored.\n", len(events), user, len(records))
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringP("user", "u", "", "Learner ID")
	ingestCmd.MarkFlagRequired("user")
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/learnpath/learnpath/internal/dashboard"
	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/recommend"
	"github.com/learnpath/learnpath/internal/store"
	"github.com/learnpath/learnpath/internal/topicgraph"
	"github.com/spf13/cobra"
)

// state bundles the loaded dependencies every command works with.
type state struct {
	store   *store.Store
	graph   *topicgraph.Graph
	mastery *mastery.Store
}

func (s *state) Close() error {
	return s.store.Close()
}

// openState opens the store, loads the topic graph, and loads each user's
// mastery into an in-memory store. Users whose latest persisted snapshot
// covers their full event log warm-start from it; everyone else gets their
// history replayed and recomputed.
func openState(cmd *cobra.Command) (*state, error) {
	ctx := cmd.Context()

	graph, err := resolveGraph(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ms := mastery.NewStore(graph, mastery.ConfigFromEnv())
	if err := replayEvents(ctx, st, ms); err != nil {
		st.Close()
		return nil, err
	}

	return &state{store: st, graph: graph, mastery: ms}, nil
}

// resolveGraph loads the topic graph from --topics, LEARNPATH_TOPICS, or the
// built-in catalog.
func resolveGraph(cmd *cobra.Command) (*topicgraph.Graph, error) {
	path, _ := cmd.Flags().GetString("topics")
	if path == "" {
		path = os.Getenv("LEARNPATH_TOPICS")
	}
	if path == "" {
		return topicgraph.SeedGraph(), nil
	}

	g, err := topicgraph.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load topics from %s: %w", path, err)
	}
	return g, nil
}

// replayEvents loads every user's mastery into the store, warm-starting
// from the latest snapshot when it is current and recomputing otherwise.
func replayEvents(ctx context.Context, st *store.Store, ms *mastery.Store) error {
	users, err := st.UserRepo().List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		events, err := st.EventRepo().ActivityByUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("load events for %s: %w", u.ID, err)
		}
		if len(events) == 0 {
			continue
		}

		snap, err := st.SnapshotRepo().Latest(ctx, u.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("load snapshot for %s: %w", u.ID, err)
		}
		if err == nil && snapshotCurrent(snap, events) {
			ms.RestoreUser(u.ID, snap.Records, events)
			continue
		}

		if err := ms.ApplyEvents(u.ID, events); err != nil {
			return fmt.Errorf("replay events for %s: %w", u.ID, err)
		}
	}
	return nil
}

// snapshotCurrent reports whether a snapshot still reflects the whole event
// log: every event predates it and the per-record counts account for every
// stored event. A stale snapshot means a full recompute.
func snapshotCurrent(snap *store.Snapshot, events []mastery.Event) bool {
	counted := 0
	for _, rec := range snap.Records {
		counted += rec.Attempts + rec.Revisits
	}
	if counted != len(events) {
		return false
	}
	for _, e := range events {
		if e.At.After(snap.CreatedAt) {
			return false
		}
	}
	return true
}

// runDashboard opens the store and launches the TUI.
func runDashboard(cmd *cobra.Command) error {
	s, err := openState(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := recommend.NewEngine(s.graph, recommend.ConfigFromEnv())
	if err != nil {
		return err
	}

	return dashboard.Run(s.graph, engine, s.mastery)
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/learnpath/learnpath/internal/mastery"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestUserRepo_CreateAndGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.UserRepo()

	created, err := repo.Create(ctx, User{Name: "Dana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create should assign an ID")
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Dana" {
		t.Errorf("Name = %q, want Dana", got.Name)
	}
}

func TestUserRepo_GetMissing(t *testing.T) {
	st := openTestStore(t)

	_, err := st.UserRepo().Get(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEventRepo_AppendAndReplay(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	user, err := st.UserRepo().Create(ctx, User{Name: "Dana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	batch := []mastery.Event{
		{Topic: "algorithms", Kind: mastery.EventQuiz, Correct: true, Duration: 90 * time.Second, At: base},
		{Topic: "algorithms", Kind: mastery.EventRevisit, At: base.Add(time.Minute)},
		{Topic: "databases", Kind: mastery.EventQuiz, Correct: false, Duration: 2 * time.Minute, At: base.Add(2 * time.Minute)},
	}

	if err := st.EventRepo().AppendActivity(ctx, user.ID, batch); err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}

	replayed, err := st.EventRepo().ActivityByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ActivityByUser: %v", err)
	}
	if len(replayed) != 3 {
		t.Fatalf("got %d events, want 3", len(replayed))
	}
	if replayed[0].Topic != "algorithms" || !replayed[0].Correct {
		t.Errorf("first event = %+v, want correct algorithms quiz", replayed[0])
	}
	if replayed[0].Duration != 90*time.Second {
		t.Errorf("Duration = %s, want 90s", replayed[0].Duration)
	}
	if replayed[1].Kind != mastery.EventRevisit {
		t.Errorf("second event kind = %q, want revisit", replayed[1].Kind)
	}
	if !replayed[0].At.Equal(base) {
		t.Errorf("At = %s, want %s", replayed[0].At, base)
	}
}

func TestSnapshotRepo_SaveLatestPrune(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	user, err := st.UserRepo().Create(ctx, User{Name: "Dana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	repo := st.SnapshotRepo()

	if _, err := repo.Latest(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound before first save, got %v", err)
	}

	for i, score := range []float64{0.3, 0.5, 0.7} {
		recs := []mastery.Record{{
			Topic: "algorithms", Score: score, Attempts: i + 1, Correct: i + 1,
			BestSolve: time.Minute, ComputedAt: time.Now(),
		}}
		if err := repo.Save(ctx, user.ID, recs); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	latest, err := repo.Latest(ctx, user.ID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest.Records) != 1 || latest.Records[0].Score != 0.7 {
		t.Errorf("latest snapshot = %+v, want algorithms at 0.7", latest.Records)
	}
	if latest.Records[0].BestSolve != time.Minute {
		t.Errorf("BestSolve = %s, want 1m", latest.Records[0].BestSolve)
	}

	if err := repo.Prune(ctx, user.ID, 1); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	var count int
	if err := st.DB().QueryRow(
		`SELECT COUNT(*) FROM mastery_snapshots WHERE user_id = ?`, user.ID,
	).Scan(&count); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 1 {
		t.Errorf("after prune: %d snapshots, want 1", count)
	}
}

func TestSeedDemo(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := SeedDemo(ctx, st); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	users, err := st.UserRepo().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("got %d users, want 3", len(users))
	}

	events, err := st.EventRepo().ActivityByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ActivityByUser: %v", err)
	}
	if len(events) == 0 {
		t.Error("alice should have seeded activity")
	}

	// Seeding twice must not silently duplicate history.
	if err := SeedDemo(ctx, st); err == nil {
		t.Error("second seed should fail on existing users")
	}
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/learnpath/learnpath/internal/mastery"
)

// Demo learner profiles. Levels map to canned event patterns below, so the
// seeded dashboard shows the spread the recommenders need: strong
// foundations, partial progress, and untouched topics.
var demoUsers = []struct {
	id     string
	name   string
	levels map[string]string
}{
	{
		id:   "alice",
		name: "Alice",
		levels: map[string]string{
			"programming-basics": "strong",
			"data-structures":    "good",
			"algorithms":         "fair",
			"oop":                "fair",
			"databases":          "weak",
		},
	},
	{
		id:   "bob",
		name: "Bob",
		levels: map[string]string{
			"programming-basics": "good",
			"data-structures":    "fair",
			"algorithms":         "fair",
			"oop":                "strong",
			"databases":          "good",
		},
	},
	{
		id:   "charlie",
		name: "Charlie",
		levels: map[string]string{
			"programming-basics": "fair",
			"data-structures":    "fair",
			"algorithms":         "weak",
			"oop":                "good",
			"databases":          "strong",
		},
	},
}

// SeedDemo loads the demo learners and their activity history. Existing
// databases are left alone: seeding a second time returns an error from the
// user insert rather than duplicating history.
func SeedDemo(ctx context.Context, st *Store) error {
	users := st.UserRepo()
	events := st.EventRepo()

	base := time.Now().Add(-30 * 24 * time.Hour)

	for _, du := range demoUsers {
		if _, err := users.Create(ctx, User{ID: du.id, Name: du.name}); err != nil {
			return fmt.Errorf("seed user %s: %w", du.id, err)
		}

		var batch []mastery.Event
		at := base
		for _, topic := range []string{"programming-basics", "data-structures", "algorithms", "oop", "databases"} {
			level, ok := du.levels[topic]
			if !ok {
				continue
			}
			batch = append(batch, levelEvents(topic, level, at)...)
			at = at.Add(24 * time.Hour)
		}
		if err := events.AppendActivity(ctx, du.id, batch); err != nil {
			return fmt.Errorf("seed events for %s: %w", du.id, err)
		}
	}
	return nil
}

// levelEvents produces a deterministic event pattern for a proficiency
// level. Scores land near 0.9 / 0.78 / 0.55 / 0.45 under the default
// mastery parameters.
func levelEvents(topic, level string, start time.Time) []mastery.Event {
	quiz := func(i int, correct bool, secs int) mastery.Event {
		return mastery.Event{
			Topic:    topic,
			Kind:     mastery.EventQuiz,
			Correct:  correct,
			Duration: time.Duration(secs) * time.Second,
			At:       start.Add(time.Duration(i) * 10 * time.Minute),
		}
	}
	revisit := func(i int) mastery.Event {
		return mastery.Event{
			Topic: topic,
			Kind:  mastery.EventRevisit,
			At:    start.Add(time.Duration(i) * 10 * time.Minute),
		}
	}

	switch level {
	case "strong":
		return []mastery.Event{
			quiz(0, true, 75), quiz(1, true, 60), quiz(2, true, 70), quiz(3, true, 65),
		}
	case "good":
		return []mastery.Event{
			quiz(0, false, 110), quiz(1, true, 80), quiz(2, true, 60), quiz(3, true, 70), quiz(4, true, 65),
		}
	case "fair":
		return []mastery.Event{
			quiz(0, false, 115), quiz(1, true, 100), quiz(2, false, 105), quiz(3, true, 90), quiz(4, true, 95),
			revisit(5),
		}
	case "weak":
		return []mastery.Event{
			quiz(0, false, 115), quiz(1, true, 100), quiz(2, false, 110), quiz(3, true, 105),
			revisit(4), revisit(5),
		}
	default:
		return nil
	}
}

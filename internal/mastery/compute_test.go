package mastery

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/learnpath/learnpath/internal/topicgraph"
)

func testGraph(t *testing.T) *topicgraph.Graph {
	t.Helper()
	g, err := topicgraph.New([]topicgraph.Topic{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", Prerequisites: []string{"a"}},
	})
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

func quiz(topic string, correct bool, dur time.Duration, at time.Time) Event {
	return Event{Topic: topic, Kind: EventQuiz, Correct: correct, Duration: dur, At: at}
}

func TestComputeMastery_WeightedComponents(t *testing.T) {
	g := testGraph(t)
	cfg := DefaultConfig()
	base := time.Now()

	// 3 of 4 correct, fastest correct solve at half the target, one revisit.
	events := []Event{
		quiz("a", true, 60*time.Second, base),
		quiz("a", true, 90*time.Second, base.Add(time.Minute)),
		quiz("a", false, 30*time.Second, base.Add(2*time.Minute)),
		quiz("a", true, 80*time.Second, base.Add(3*time.Minute)),
		{Topic: "a", Kind: EventRevisit, At: base.Add(4 * time.Minute)},
	}

	rec, err := ComputeMastery(g, "a", events, cfg)
	if err != nil {
		t.Fatalf("ComputeMastery: %v", err)
	}

	if rec.Attempts != 4 || rec.Correct != 3 {
		t.Errorf("attempts/correct = %d/%d, want 4/3", rec.Attempts, rec.Correct)
	}
	if rec.BestSolve != 60*time.Second {
		t.Errorf("BestSolve = %s, want 60s", rec.BestSolve)
	}
	if rec.Revisits != 1 {
		t.Errorf("Revisits = %d, want 1", rec.Revisits)
	}

	// 0.6*0.75 + 0.2*0.5 + 0.2*(1 - 1/3)
	want := 0.6*0.75 + 0.2*0.5 + 0.2*(2.0/3.0)
	if math.Abs(rec.Score-want) > 1e-9 {
		t.Errorf("Score = %f, want %f", rec.Score, want)
	}
}

func TestComputeMastery_ScoreInRange(t *testing.T) {
	g := testGraph(t)
	cfg := DefaultConfig()
	base := time.Now()

	tests := []struct {
		name   string
		events []Event
	}{
		{"no events", nil},
		{"all wrong", []Event{quiz("a", false, time.Minute, base)}},
		{"all correct instant", []Event{quiz("a", true, 0, base)}},
		{"many revisits", []Event{
			{Topic: "a", Kind: EventRevisit, At: base},
			{Topic: "a", Kind: EventRevisit, At: base},
			{Topic: "a", Kind: EventRevisit, At: base},
			{Topic: "a", Kind: EventRevisit, At: base},
			{Topic: "a", Kind: EventRevisit, At: base},
		}},
		{"slow correct", []Event{quiz("a", true, time.Hour, base)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ComputeMastery(g, "a", tt.events, cfg)
			if err != nil {
				t.Fatalf("ComputeMastery: %v", err)
			}
			if rec.Score < 0 || rec.Score > 1 {
				t.Errorf("Score = %f, want within [0,1]", rec.Score)
			}
		})
	}
}

func TestComputeMastery_MonotoneUnderCorrectEvidence(t *testing.T) {
	g := testGraph(t)
	cfg := DefaultConfig()
	base := time.Now()

	events := []Event{
		quiz("a", false, 3*time.Minute, base),
		quiz("a", true, 100*time.Second, base.Add(time.Minute)),
		{Topic: "a", Kind: EventRevisit, At: base.Add(2 * time.Minute)},
	}

	prev, err := ComputeMastery(g, "a", events, cfg)
	if err != nil {
		t.Fatalf("ComputeMastery: %v", err)
	}

	// Append correct quiz evidence with varying speeds; the score must never
	// drop, even when the new solve is slower than the best so far.
	durations := []time.Duration{150 * time.Second, 40 * time.Second, 10 * time.Minute, time.Second}
	for i, d := range durations {
		events = append(events, quiz("a", true, d, base.Add(time.Duration(3+i)*time.Minute)))
		rec, err := ComputeMastery(g, "a", events, cfg)
		if err != nil {
			t.Fatalf("ComputeMastery: %v", err)
		}
		if rec.Score < prev.Score {
			t.Errorf("score dropped from %f to %f after correct answer (solve %s)", prev.Score, rec.Score, d)
		}
		prev = rec
	}
}

func TestComputeMastery_UnknownTopic(t *testing.T) {
	g := testGraph(t)

	_, err := ComputeMastery(g, "ghost", nil, DefaultConfig())
	var invalid *InvalidEventError
	if !errors.As(err, &invalid) {
		t.Fatalf("want *InvalidEventError, got %v", err)
	}
	if invalid.Topic != "ghost" {
		t.Errorf("error topic = %q, want ghost", invalid.Topic)
	}
}

func TestComputeMastery_UnknownEventTopic(t *testing.T) {
	g := testGraph(t)
	events := []Event{quiz("ghost", true, time.Minute, time.Now())}

	_, err := ComputeMastery(g, "a", events, DefaultConfig())
	var invalid *InvalidEventError
	if !errors.As(err, &invalid) {
		t.Fatalf("want *InvalidEventError, got %v", err)
	}
}

func TestComputeMastery_IgnoresOtherTopics(t *testing.T) {
	g := testGraph(t)
	base := time.Now()
	events := []Event{
		quiz("a", true, time.Minute, base),
		quiz("b", false, time.Minute, base),
	}

	rec, err := ComputeMastery(g, "a", events, DefaultConfig())
	if err != nil {
		t.Fatalf("ComputeMastery: %v", err)
	}
	if rec.Attempts != 1 || rec.Correct != 1 {
		t.Errorf("attempts/correct = %d/%d, want 1/1", rec.Attempts, rec.Correct)
	}
}

package mastery

import (
	"os"
	"strconv"
	"time"

	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Config holds the mastery scoring parameters.
type Config struct {
	// AccuracyWeight, SpeedWeight and RevisitWeight must sum to 1.0.
	AccuracyWeight float64
	SpeedWeight    float64
	RevisitWeight  float64

	// TargetSolve is the solve duration that earns a speed component of 0.
	// The fastest correct solve is normalized against it; instant answers
	// score 1, answers at or above the target score 0.
	TargetSolve time.Duration

	// RevisitLimit is the revisit count at which the revisit penalty
	// saturates (revisit component reaches 0).
	RevisitLimit int
}

// DefaultConfig returns the standard scoring parameters.
func DefaultConfig() Config {
	return Config{
		AccuracyWeight: 0.6,
		SpeedWeight:    0.2,
		RevisitWeight:  0.2,
		TargetSolve:    2 * time.Minute,
		RevisitLimit:   3,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for unset values. The component weights are fixed; only the
// normalization knobs are tunable.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LEARNPATH_TARGET_SOLVE_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.TargetSolve = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("LEARNPATH_REVISIT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RevisitLimit = n
		}
	}

	return cfg
}

// Record holds the computed mastery for a (user, topic) pair.
type Record struct {
	Topic      string
	Score      float64
	Attempts   int
	Correct    int
	BestSolve  time.Duration // fastest correct quiz solve; 0 when none yet
	Revisits   int
	ComputedAt time.Time
}

// Accuracy returns the quiz accuracy ratio.
func (r Record) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// ComputeMastery recomputes the mastery record for a topic from its full
// event history. It fails with *InvalidEventError when the topic, or any
// event's topic, is absent from the graph.
//
// The score is a weighted blend of quiz accuracy, best correct solve speed
// and a revisit penalty. Each component can only improve (or stay put) under
// additional correct quiz evidence, so the score is monotonically
// non-decreasing across a session of correct answers.
func ComputeMastery(g *topicgraph.Graph, topic string, events []Event, cfg Config) (Record, error) {
	if !g.Contains(topic) {
		return Record{}, &InvalidEventError{Topic: topic}
	}
	for _, e := range events {
		if err := e.validate(); err != nil {
			return Record{}, err
		}
		if !g.Contains(e.Topic) {
			return Record{}, &InvalidEventError{Topic: e.Topic}
		}
	}

	rec := Record{Topic: topic, ComputedAt: time.Now()}
	for _, e := range events {
		if e.Topic != topic {
			continue
		}
		switch e.Kind {
		case EventQuiz:
			rec.Attempts++
			if e.Correct {
				rec.Correct++
				if rec.BestSolve == 0 || e.Duration < rec.BestSolve {
					rec.BestSolve = e.Duration
				}
			}
		case EventRevisit:
			rec.Revisits++
		}
	}

	rec.Score = score(rec, cfg)
	return rec, nil
}

func score(rec Record, cfg Config) float64 {
	accuracy := rec.Accuracy()

	speed := 0.0
	if rec.BestSolve > 0 && cfg.TargetSolve > 0 {
		speed = clamp01(1 - float64(rec.BestSolve)/float64(cfg.TargetSolve))
	} else if rec.Correct > 0 {
		// A correct solve with no recorded duration counts as instant.
		speed = 1.0
	}

	penalty := 1.0
	if cfg.RevisitLimit > 0 {
		penalty = clamp01(1 - float64(rec.Revisits)/float64(cfg.RevisitLimit))
	}

	s := cfg.AccuracyWeight*accuracy + cfg.SpeedWeight*speed + cfg.RevisitWeight*penalty
	return clamp01(s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

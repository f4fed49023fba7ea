package mastery

import (
	"fmt"
	"time"
)

// EventKind distinguishes activity event types.
type EventKind string

const (
	// EventQuiz is a graded quiz attempt on a topic.
	EventQuiz EventKind = "quiz"
	// EventRevisit marks the learner returning to a topic they had already
	// studied. Revisits signal repeated struggle and lower the mastery score.
	EventRevisit EventKind = "revisit"
)

// Event is a single activity record for a (user, topic) pair. Events are the
// only input to mastery computation; scores are always recomputed from the
// full event history, never patched in place.
type Event struct {
	Topic    string
	Kind     EventKind
	Correct  bool
	Duration time.Duration
	At       time.Time
}

// InvalidEventError reports an event that references a topic absent from the
// topic graph. The whole batch containing the event is rejected.
type InvalidEventError struct {
	Topic string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("event references unknown topic %q", e.Topic)
}

// validate checks event fields that do not depend on the topic graph.
func (e Event) validate() error {
	switch e.Kind {
	case EventQuiz, EventRevisit:
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	if e.Topic == "" {
		return fmt.Errorf("event has empty topic")
	}
	if e.Duration < 0 {
		return fmt.Errorf("event has negative duration %s", e.Duration)
	}
	return nil
}

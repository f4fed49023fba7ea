// Package review schedules spaced refreshers for mastered topics. Review
// state is derived from the activity event history on every call, the same
// way mastery scores are, so there is nothing to migrate or patch.
package review

import (
	"sort"
	"time"

	"github.com/learnpath/learnpath/internal/mastery"
)

// Planner derives review schedules for a learner's mastered topics.
type Planner struct {
	threshold float64
}

// NewPlanner creates a planner. threshold is the mastery score at which a
// topic enters the review rotation, normally the recommender's mastered
// threshold.
func NewPlanner(threshold float64) *Planner {
	return &Planner{threshold: threshold}
}

// Plan derives a review state for every topic at or above the mastery
// threshold. Consecutive correct quiz answers advance the stage; an incorrect
// answer or a revisit resets it. The next review falls one interval after the
// topic was last touched.
func (p *Planner) Plan(records []mastery.Record, events []mastery.Event) map[string]*State {
	mastered := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Score >= p.threshold {
			mastered[r.Topic] = true
		}
	}
	if len(mastered) == 0 {
		return nil
	}

	states := make(map[string]*State, len(mastered))
	for _, e := range events {
		if !mastered[e.Topic] {
			continue
		}
		s := states[e.Topic]
		if s == nil {
			s = &State{Topic: e.Topic}
			states[e.Topic] = s
		}

		if e.Kind == mastery.EventQuiz && e.Correct {
			if !s.Graduated {
				s.Stage++
				if s.Stage >= GraduationStage {
					s.Graduated = true
				}
			}
		} else {
			s.Stage = 0
			s.Graduated = false
		}

		if e.At.After(s.LastSeen) {
			s.LastSeen = e.At
		}
	}

	for _, s := range states {
		s.NextReview = s.LastSeen.AddDate(0, 0, s.IntervalDays())
	}
	return states
}

// Due returns the topics due for review, most overdue first.
func Due(states map[string]*State, now time.Time) []*State {
	var due []*State
	for _, s := range states {
		if s.IsDue(now) {
			due = append(due, s)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		oi, oj := due[i].OverdueDays(now), due[j].OverdueDays(now)
		if oi != oj {
			return oi > oj
		}
		return due[i].Topic < due[j].Topic
	})
	return due
}

// Upcoming returns topics not yet due, soonest first.
func Upcoming(states map[string]*State, now time.Time) []*State {
	var upcoming []*State
	for _, s := range states {
		if !s.IsDue(now) {
			upcoming = append(upcoming, s)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		if !upcoming[i].NextReview.Equal(upcoming[j].NextReview) {
			return upcoming[i].NextReview.Before(upcoming[j].NextReview)
		}
		return upcoming[i].Topic < upcoming[j].Topic
	})
	return upcoming
}

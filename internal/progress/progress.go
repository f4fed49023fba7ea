// Package progress computes engagement statistics from a learner's activity
// history: study streaks and quiz totals.
package progress

import (
	"time"

	"github.com/learnpath/learnpath/internal/mastery"
)

// Summary aggregates a learner's activity.
type Summary struct {
	TotalQuizzes  int
	TotalCorrect  int
	TotalRevisits int
	ActiveDays    int
	CurrentStreak int // consecutive active days ending at the last active day
	LongestStreak int
}

// Summarize computes a Summary from the full event history.
func Summarize(events []mastery.Event) Summary {
	var s Summary
	days := make(map[string]bool)

	for _, e := range events {
		switch e.Kind {
		case mastery.EventQuiz:
			s.TotalQuizzes++
			if e.Correct {
				s.TotalCorrect++
			}
		case mastery.EventRevisit:
			s.TotalRevisits++
		}
		if !e.At.IsZero() {
			days[e.At.Format("2006-01-02")] = true
		}
	}

	s.ActiveDays = len(days)
	s.CurrentStreak, s.LongestStreak = streaks(days)
	return s
}

// streaks computes the current and longest run of consecutive active days.
// The current streak is anchored at the most recent active day.
func streaks(days map[string]bool) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	var last time.Time
	for d := range days {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if t.After(last) {
			last = t
		}
	}

	// Walk backwards from the last active day.
	for t := last; days[t.Format("2006-01-02")]; t = t.AddDate(0, 0, -1) {
		current++
	}

	first := last
	for d := range days {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if t.Before(first) {
			first = t
		}
	}

	run := 0
	for t := first; !t.After(last); t = t.AddDate(0, 0, 1) {
		if days[t.Format("2006-01-02")] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return current, longest
}

// NextMilestone returns the next streak milestone above the current streak.
// Milestones run 5, 10, 15, 20, then every 5 days.
func NextMilestone(current int) int {
	for _, t := range []int{5, 10, 15, 20} {
		if t > current {
			return t
		}
	}
	return ((current / 5) + 1) * 5
}

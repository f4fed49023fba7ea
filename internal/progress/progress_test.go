package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/learnpath/learnpath/internal/mastery"
)

func day(offset int) time.Time {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestSummarize_Totals(t *testing.T) {
	events := []mastery.Event{
		{Topic: "a", Kind: mastery.EventQuiz, Correct: true, At: day(0)},
		{Topic: "a", Kind: mastery.EventQuiz, Correct: false, At: day(0)},
		{Topic: "a", Kind: mastery.EventRevisit, At: day(0)},
	}

	s := Summarize(events)
	assert.Equal(t, 2, s.TotalQuizzes)
	assert.Equal(t, 1, s.TotalCorrect)
	assert.Equal(t, 1, s.TotalRevisits)
	assert.Equal(t, 1, s.ActiveDays)
}

func TestSummarize_Streaks(t *testing.T) {
	// Active on days 0-2, gap at 3, active 4-6. The current streak anchors
	// at day 6 and runs 3 days; the longest run is also 3.
	var events []mastery.Event
	for _, d := range []int{0, 1, 2, 4, 5, 6} {
		events = append(events, mastery.Event{
			Topic: "a", Kind: mastery.EventQuiz, Correct: true, At: day(d),
		})
	}

	s := Summarize(events)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
	assert.Equal(t, 6, s.ActiveDays)
}

func TestSummarize_SingleLongRun(t *testing.T) {
	var events []mastery.Event
	for d := range 5 {
		events = append(events, mastery.Event{
			Topic: "a", Kind: mastery.EventQuiz, Correct: true, At: day(d),
		})
	}

	s := Summarize(events)
	assert.Equal(t, 5, s.CurrentStreak)
	assert.Equal(t, 5, s.LongestStreak)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.CurrentStreak)
	assert.Zero(t, s.LongestStreak)
	assert.Zero(t, s.ActiveDays)
}

func TestNextMilestone(t *testing.T) {
	tests := []struct{ current, want int }{
		{0, 5},
		{4, 5},
		{5, 10},
		{19, 20},
		{20, 25},
		{23, 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextMilestone(tt.current), "current=%d", tt.current)
	}
}

package review

import "time"

// State holds the review schedule for a single mastered topic.
type State struct {
	Topic      string
	Stage      int
	Graduated  bool
	LastSeen   time.Time
	NextReview time.Time
}

// IsDue reports whether the topic is at or past its review date.
func (s *State) IsDue(now time.Time) bool {
	return !now.Before(s.NextReview)
}

// OverdueDays returns how many days past due the topic is, 0 when not yet due.
func (s *State) OverdueDays(now time.Time) float64 {
	if now.Before(s.NextReview) {
		return 0
	}
	return now.Sub(s.NextReview).Hours() / 24.0
}

// DaysUntil returns the number of days until the next review, 0 when due.
func (s *State) DaysUntil(now time.Time) int {
	if s.IsDue(now) {
		return 0
	}
	return int(s.NextReview.Sub(now).Hours()/24.0) + 1
}

// IntervalDays returns the current review interval in days.
func (s *State) IntervalDays() int {
	if s.Graduated {
		return GraduatedIntervalDays
	}
	if s.Stage >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[s.Stage]
}

// Status describes a topic's review status for display.
type Status string

const (
	StatusNotDue    Status = "not_due"
	StatusDue       Status = "due"
	StatusOverdue   Status = "overdue"
	StatusGraduated Status = "graduated"
)

// Status returns the review status, treating anything past half its interval
// beyond the due date as overdue.
func (s *State) Status(now time.Time) Status {
	if !s.IsDue(now) {
		if s.Graduated {
			return StatusGraduated
		}
		return StatusNotDue
	}

	graceHours := float64(s.IntervalDays()) * 0.5 * 24.0
	threshold := s.NextReview.Add(time.Duration(graceHours * float64(time.Hour)))
	if now.After(threshold) {
		return StatusOverdue
	}
	return StatusDue
}

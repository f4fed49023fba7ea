package recommend

import "fmt"

// InsufficientDataError indicates collaborative filtering found too few
// comparable peers to produce predictions. Callers fall back to rule-based
// output alone rather than failing the request.
type InsufficientDataError struct {
	User  string
	Peers int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient peer data for user %q: %d overlapping peers (need at least 2)", e.User, e.Peers)
}

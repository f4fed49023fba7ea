package recommend

import (
	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Source tags where a recommendation came from.
type Source string

const (
	SourceRule          Source = "rule"
	SourceCollaborative Source = "collaborative"
	SourceDKT           Source = "dkt"
	SourceHybrid        Source = "hybrid"
)

// Recommendation is a single ranked suggestion. Recommendations are
// request-scoped: produced, returned, discarded.
type Recommendation struct {
	Topic     string
	Score     float64
	Source    Source
	Rationale string
}

// Recommender produces ranked topic suggestions for one user against a
// mastery snapshot. Implementations are pure with respect to the snapshot:
// same inputs, same ordered output.
//
// New sources (a trained knowledge-tracing model, say) plug in here; the
// hybrid combiner takes any set of Recommenders.
type Recommender interface {
	Recommend(user string, graph *topicgraph.Graph, snap mastery.Snapshot, k int) ([]Recommendation, error)
	Source() Source
}

package recommend

import (
	"errors"
	"fmt"

	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Result carries the merged recommendations plus human-readable notices for
// sources that could not contribute. The dashboard shows a partial list and
// the notice instead of failing the whole request.
type Result struct {
	Recommendations []Recommendation
	Notices         []string
}

// Engine orchestrates the recommendation sources against a mastery snapshot.
type Engine struct {
	graph    *topicgraph.Graph
	cfg      Config
	rule     *RuleBased
	collab   *Collaborative
	extra    []Recommender // optional additional sources (knowledge tracing)
	combiner *Combiner
}

// NewEngine creates an engine with rule-based and collaborative sources.
// Additional Recommenders join the hybrid merge without structural change.
func NewEngine(graph *topicgraph.Graph, cfg Config, extra ...Recommender) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommendation config: %w", err)
	}
	return &Engine{
		graph:    graph,
		cfg:      cfg,
		rule:     NewRuleBased(cfg),
		collab:   NewCollaborative(cfg),
		extra:    extra,
		combiner: NewCombiner(cfg),
	}, nil
}

// Recommend produces the hybrid ranking for a user. Collaborative filtering
// lacking comparable peers degrades to rule-based output with a notice; any
// other source error fails the request.
func (e *Engine) Recommend(user string, snap mastery.Snapshot, k int) (*Result, error) {
	if k <= 0 {
		k = e.cfg.TopK
	}

	// Sources see an uncapped candidate pool; only the merged list is cut to
	// k, so a topic strong in one source cannot be pushed out prematurely.
	ruleRecs, err := e.rule.Recommend(user, e.graph, snap, 0)
	if err != nil {
		return nil, fmt.Errorf("rule-based recommender: %w", err)
	}

	result := &Result{}
	lists := [][]Recommendation{ruleRecs}

	collabRecs, err := e.collab.Recommend(user, e.graph, snap, 0)
	switch {
	case err == nil:
		lists = append(lists, collabRecs)
	case isInsufficientData(err):
		result.Notices = append(result.Notices,
			"Not enough similar learners yet — showing prerequisite-based suggestions only.")
	default:
		return nil, fmt.Errorf("collaborative recommender: %w", err)
	}

	for _, r := range e.extra {
		recs, err := r.Recommend(user, e.graph, snap, 0)
		if err != nil {
			result.Notices = append(result.Notices,
				fmt.Sprintf("The %s source is unavailable: %v", r.Source(), err))
			continue
		}
		lists = append(lists, recs)
	}

	result.Recommendations = e.combiner.Combine(lists, k)

	if len(result.Recommendations) == 0 {
		result.Notices = append(result.Notices,
			"Nothing to recommend: everything is either mastered or blocked by unmet prerequisites.")
	}

	return result, nil
}

// RuleOnly returns the rule-based ranking alone.
func (e *Engine) RuleOnly(user string, snap mastery.Snapshot, k int) ([]Recommendation, error) {
	if k <= 0 {
		k = e.cfg.TopK
	}
	return e.rule.Recommend(user, e.graph, snap, k)
}

// CollaborativeOnly returns the collaborative ranking alone.
func (e *Engine) CollaborativeOnly(user string, snap mastery.Snapshot, k int) ([]Recommendation, error) {
	if k <= 0 {
		k = e.cfg.TopK
	}
	return e.collab.Recommend(user, e.graph, snap, k)
}

func isInsufficientData(err error) bool {
	var insufficient *InsufficientDataError
	return errors.As(err, &insufficient)
}

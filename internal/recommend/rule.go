package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/topicgraph"
)

// RuleBased recommends topics whose prerequisites the learner has satisfied
// but which the learner has not yet mastered.
type RuleBased struct {
	cfg Config
}

// NewRuleBased creates a rule-based recommender.
func NewRuleBased(cfg Config) *RuleBased {
	return &RuleBased{cfg: cfg}
}

func (r *RuleBased) Source() Source { return SourceRule }

// Recommend walks the topic graph in topological order and emits every topic
// whose prerequisites all sit at or above the prerequisite threshold and
// whose own mastery sits below the mastered threshold. A larger mastery gap
// scores higher; ties prefer shallower topics, since foundational gaps block
// more downstream work.
//
// An empty result is a valid outcome: the learner has either mastered
// everything or is blocked on unmet prerequisites. Callers surface that to
// the user instead of substituting something else.
func (r *RuleBased) Recommend(user string, graph *topicgraph.Graph, snap mastery.Snapshot, k int) ([]Recommendation, error) {
	scores := snap.Scores(user)

	var recs []Recommendation
	for _, topic := range graph.TopologicalOrder() {
		own := scores[topic.ID]
		if own >= r.cfg.MasteredThreshold {
			continue
		}
		if !r.prereqsSatisfied(topic, scores) {
			continue
		}
		recs = append(recs, Recommendation{
			Topic:     topic.ID,
			Score:     1 - own,
			Source:    SourceRule,
			Rationale: r.rationale(topic, own, graph),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		di, dj := graph.Depth(recs[i].Topic), graph.Depth(recs[j].Topic)
		if di != dj {
			return di < dj
		}
		return recs[i].Topic < recs[j].Topic
	})

	return truncate(recs, k), nil
}

func (r *RuleBased) prereqsSatisfied(topic topicgraph.Topic, scores map[string]float64) bool {
	for _, prereqID := range topic.Prerequisites {
		if scores[prereqID] < r.cfg.PrereqThreshold {
			return false
		}
	}
	return true
}

func (r *RuleBased) rationale(topic topicgraph.Topic, own float64, graph *topicgraph.Graph) string {
	if len(topic.Prerequisites) == 0 {
		return fmt.Sprintf("foundational topic, current mastery %.0f%%", own*100)
	}
	names := make([]string, 0, len(topic.Prerequisites))
	for _, p := range graph.Prerequisites(topic.ID) {
		names = append(names, p.Name)
	}
	return fmt.Sprintf("prerequisites satisfied (%s), current mastery %.0f%%", strings.Join(names, ", "), own*100)
}

func truncate(recs []Recommendation, k int) []Recommendation {
	if k > 0 && len(recs) > k {
		return recs[:k]
	}
	return recs
}

package recommend

import (
	"sort"

	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/topicgraph"
)

// DKT is the deep-knowledge-tracing extension point. No trained model ships
// yet; this stub predicts a flat 0.5 for every unattempted topic so the
// hybrid combiner's handling of a third source can be exercised end to end.
// A real model replaces predict() without touching the combiner.
type DKT struct{}

// NewDKT creates the stub knowledge-tracing recommender.
func NewDKT() *DKT {
	return &DKT{}
}

func (d *DKT) Source() Source { return SourceDKT }

func (d *DKT) Recommend(user string, graph *topicgraph.Graph, snap mastery.Snapshot, k int) ([]Recommendation, error) {
	attempted := snap.Scores(user)

	var recs []Recommendation
	for _, topic := range graph.TopologicalOrder() {
		if _, ok := attempted[topic.ID]; ok {
			continue
		}
		recs = append(recs, Recommendation{
			Topic:     topic.ID,
			Score:     d.predict(user, topic.ID),
			Source:    SourceDKT,
			Rationale: "knowledge-tracing placeholder prediction",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Topic < recs[j].Topic
	})
	return truncate(recs, k), nil
}

func (d *DKT) predict(string, string) float64 {
	return 0.5
}

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/learnpath/learnpath/internal/mastery"
	"github.com/learnpath/learnpath/internal/topicgraph"
)

// Collaborative recommends topics popular among learners with similar
// mastery patterns (user-user nearest neighbors).
type Collaborative struct {
	cfg Config
}

// NewCollaborative creates a collaborative-filtering recommender.
func NewCollaborative(cfg Config) *Collaborative {
	return &Collaborative{cfg: cfg}
}

func (c *Collaborative) Source() Source { return SourceCollaborative }

// Recommend finds the target user's nearest neighbors by cosine similarity
// over shared-topic mastery vectors, then predicts a score for every topic
// the target has not attempted as the similarity-weighted mean of neighbor
// mastery. It fails with *InsufficientDataError when fewer than two other
// users share any topic overlap with the target.
func (c *Collaborative) Recommend(user string, graph *topicgraph.Graph, snap mastery.Snapshot, k int) ([]Recommendation, error) {
	target := snap.Scores(user)

	type neighbor struct {
		id  string
		sim float64
	}
	var neighbors []neighbor
	for other, scores := range snap {
		if other == user {
			continue
		}
		if !overlaps(target, scores) {
			continue
		}
		neighbors = append(neighbors, neighbor{id: other, sim: cosineSimilarity(target, scores)})
	}

	if len(neighbors) < 2 {
		return nil, &InsufficientDataError{User: user, Peers: len(neighbors)}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].id < neighbors[j].id
	})
	if len(neighbors) > c.cfg.Neighbors {
		neighbors = neighbors[:c.cfg.Neighbors]
	}

	// Predict for every graph topic the target has not attempted.
	var recs []Recommendation
	for _, topic := range graph.TopologicalOrder() {
		if _, attempted := target[topic.ID]; attempted {
			continue
		}

		weighted, simSum, contributors := 0.0, 0.0, 0
		for _, n := range neighbors {
			score, ok := snap[n.id][topic.ID]
			if !ok {
				continue
			}
			weighted += n.sim * score
			simSum += n.sim
			contributors++
		}
		if contributors == 0 || simSum <= 0 {
			continue
		}

		recs = append(recs, Recommendation{
			Topic:     topic.ID,
			Score:     clampUnit(weighted / simSum),
			Source:    SourceCollaborative,
			Rationale: fmt.Sprintf("%d similar learners average %.0f%% mastery here", contributors, 100*weighted/simSum),
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

// cosineSimilarity computes cosine similarity over the topics both vectors
// share; topics absent from either side are excluded. The similarity of two
// zero vectors is defined as 0, not NaN, so ranking stays total and
// deterministic.
func cosineSimilarity(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for topic, av := range a {
		bv, ok := b[topic]
		if !ok {
			continue
		}
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// overlaps reports whether the two score maps share at least one topic.
func overlaps(a, b map[string]float64) bool {
	for topic := range a {
		if _, ok := b[topic]; ok {
			return true
		}
	}
	return false
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

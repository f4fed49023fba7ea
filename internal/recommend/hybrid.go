package recommend

import (
	"fmt"
	"sort"
	"strings"
)

// Combiner merges ranked lists from multiple sources into a single hybrid
// ranking.
type Combiner struct {
	cfg Config
}

// NewCombiner creates a hybrid combiner.
func NewCombiner(cfg Config) *Combiner {
	return &Combiner{cfg: cfg}
}

// Combine merges per-source recommendation lists.
//
// A topic backed by two or more sources gets max + bonus·min of its source
// scores, capped at 1.0 — agreement is rewarded without an average masking a
// strong single-source signal. A topic from a single source keeps its score
// scaled by that source's trust weight. The result sorts descending by
// combined score; ties rank rule-backed topics first, since prerequisite
// satisfaction is a harder constraint than similarity.
func (c *Combiner) Combine(lists [][]Recommendation, k int) []Recommendation {
	type entry struct {
		sources map[Source]float64
		order   []Source
	}
	byTopic := make(map[string]*entry)
	var topicOrder []string

	for _, list := range lists {
		for _, rec := range list {
			e, ok := byTopic[rec.Topic]
			if !ok {
				e = &entry{sources: make(map[Source]float64)}
				byTopic[rec.Topic] = e
				topicOrder = append(topicOrder, rec.Topic)
			}
			if _, seen := e.sources[rec.Source]; !seen {
				e.order = append(e.order, rec.Source)
			}
			e.sources[rec.Source] = rec.Score
		}
	}

	combined := make([]Recommendation, 0, len(byTopic))
	for _, topic := range topicOrder {
		e := byTopic[topic]
		combined = append(combined, Recommendation{
			Topic:     topic,
			Score:     c.combinedScore(e.sources),
			Source:    SourceHybrid,
			Rationale: describeSources(e.order),
		})
	}

	sort.SliceStable(combined, func(i, j int) bool {
		if combined[i].Score != combined[j].Score {
			return combined[i].Score > combined[j].Score
		}
		ri := hasSource(byTopic[combined[i].Topic].sources, SourceRule)
		rj := hasSource(byTopic[combined[j].Topic].sources, SourceRule)
		if ri != rj {
			return ri
		}
		return combined[i].Topic < combined[j].Topic
	})

	return truncate(combined, k)
}

func (c *Combiner) combinedScore(sources map[Source]float64) float64 {
	if len(sources) == 1 {
		for src, score := range sources {
			return clampUnit(score * c.trust(src))
		}
	}

	hi, lo := 0.0, 1.0
	for _, score := range sources {
		if score > hi {
			hi = score
		}
		if score < lo {
			lo = score
		}
	}
	return clampUnit(hi + c.cfg.AgreementBonus*lo)
}

func (c *Combiner) trust(src Source) float64 {
	switch src {
	case SourceRule:
		return c.cfg.RuleTrust
	case SourceCollaborative:
		return c.cfg.CollaborativeTrust
	case SourceDKT:
		return c.cfg.DKTTrust
	default:
		return 1.0
	}
}

func hasSource(sources map[Source]float64, src Source) bool {
	_, ok := sources[src]
	return ok
}

func describeSources(order []Source) string {
	names := make([]string, len(order))
	for i, s := range order {
		names[i] = string(s)
	}
	if len(names) == 1 {
		return fmt.Sprintf("suggested by %s source", names[0])
	}
	return fmt.Sprintf("agreed by %s sources", strings.Join(names, " and "))
}

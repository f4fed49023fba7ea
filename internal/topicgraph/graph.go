package topicgraph

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the topic DAG with precomputed indices. A Graph is built once
// at load time and treated as immutable afterwards; callers pass it around
// explicitly instead of relying on package state.
type Graph struct {
	topics     []Topic
	byID       map[string]*Topic
	roots      []Topic
	dependents map[string][]string
	topoOrder  []Topic
	topoIndex  map[string]int
	depth      map[string]int
}

// New constructs a Graph from a slice of topics. The topic set is validated
// first; a cyclic prerequisite relation surfaces as a *CycleError.
func New(topics []Topic) (*Graph, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	g := &Graph{
		topics:     slices.Clone(topics),
		byID:       make(map[string]*Topic, len(topics)),
		dependents: make(map[string][]string),
		topoIndex:  make(map[string]int, len(topics)),
		depth:      make(map[string]int, len(topics)),
	}

	for i := range g.topics {
		g.byID[g.topics[i].ID] = &g.topics[i]
	}

	// Reverse edges.
	for i := range g.topics {
		for _, prereqID := range g.topics[i].Prerequisites {
			g.dependents[prereqID] = append(g.dependents[prereqID], g.topics[i].ID)
		}
	}

	// Topological sort (Kahn's algorithm). Validation already guarantees the
	// relation is acyclic, so every topic gets an order index.
	inDegree := make(map[string]int, len(topics))
	for i := range g.topics {
		inDegree[g.topics[i].ID] = len(g.topics[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		g.topoOrder = append(g.topoOrder, *g.byID[id])

		deps := slices.Clone(g.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	for i, t := range g.topoOrder {
		g.topoIndex[t.ID] = i
	}

	// Depth = longest prerequisite chain, computed in topological order so
	// every prerequisite's depth is known before its dependents.
	for _, t := range g.topoOrder {
		d := 0
		for _, prereqID := range g.byID[t.ID].Prerequisites {
			if pd := g.depth[prereqID] + 1; pd > d {
				d = pd
			}
		}
		g.depth[t.ID] = d
	}

	for i := range g.topics {
		if len(g.topics[i].Prerequisites) == 0 {
			g.roots = append(g.roots, g.topics[i])
		}
	}

	return g, nil
}

// Topic returns a topic by ID, or an error if not found.
func (g *Graph) Topic(id string) (Topic, error) {
	t, ok := g.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic not found: %q", id)
	}
	return *t, nil
}

// Contains reports whether the graph has a topic with the given ID.
func (g *Graph) Contains(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Topics returns all topics in the graph.
func (g *Graph) Topics() []Topic {
	return slices.Clone(g.topics)
}

// Len returns the number of topics in the graph.
func (g *Graph) Len() int {
	return len(g.topics)
}

// Roots returns all topics with no prerequisites.
func (g *Graph) Roots() []Topic {
	return slices.Clone(g.roots)
}

// Prerequisites returns the direct prerequisite topics for a given topic ID.
func (g *Graph) Prerequisites(id string) []Topic {
	t, ok := g.byID[id]
	if !ok {
		return nil
	}
	result := make([]Topic, 0, len(t.Prerequisites))
	for _, prereqID := range t.Prerequisites {
		if p, ok := g.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns topics that directly depend on the given topic ID.
func (g *Graph) Dependents(id string) []Topic {
	depIDs := g.dependents[id]
	result := make([]Topic, 0, len(depIDs))
	for _, depID := range depIDs {
		if t, ok := g.byID[depID]; ok {
			result = append(result, *t)
		}
	}
	return result
}

// TopologicalOrder returns all topics in a valid topological order.
func (g *Graph) TopologicalOrder() []Topic {
	return slices.Clone(g.topoOrder)
}

// Depth returns the length of the longest prerequisite chain leading to the
// topic. Roots have depth 0. Unknown topics report -1.
func (g *Graph) Depth(id string) int {
	d, ok := g.depth[id]
	if !ok {
		return -1
	}
	return d
}

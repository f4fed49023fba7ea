package topicgraph

import (
	"fmt"
	"strings"
)

// CycleError reports a cyclic prerequisite relation. The topic graph must be
// a DAG; a cycle is fatal at load time.
type CycleError struct {
	// Topics lists the IDs that could not be topologically ordered.
	Topics []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("prerequisite cycle detected involving topics: %s", strings.Join(e.Topics, ", "))
}

// validateTopics performs all structural checks on the given topic set.
// Cycles are reported as *CycleError; everything else as a combined error
// describing all problems found.
func validateTopics(topics []Topic) error {
	var errs []string

	idSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		if t.ID == "" {
			errs = append(errs, "topic with empty ID")
		}
		if idSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		idSet[t.ID] = true
	}

	for _, t := range topics {
		for _, prereqID := range t.Prerequisites {
			if prereqID == t.ID {
				errs = append(errs, fmt.Sprintf("topic %q lists itself as a prerequisite", t.ID))
			}
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("topic %q references nonexistent prerequisite %q", t.ID, prereqID))
			}
		}
	}

	hasRoot := false
	for _, t := range topics {
		if len(t.Prerequisites) == 0 {
			hasRoot = true
			break
		}
	}
	if len(topics) > 0 && !hasRoot {
		errs = append(errs, "no root topics found (at least one topic must have no prerequisites)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("topic graph validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	// Cycle check via Kahn's algorithm, only once the ID space is clean.
	inDegree := make(map[string]int, len(topics))
	adjList := make(map[string][]string)
	for _, t := range topics {
		inDegree[t.ID] = len(t.Prerequisites)
		for _, prereqID := range t.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], t.ID)
		}
	}

	var queue []string
	for _, t := range topics {
		if inDegree[t.ID] == 0 {
			queue = append(queue, t.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(topics) {
		var cycleNodes []string
		for _, t := range topics {
			if inDegree[t.ID] > 0 {
				cycleNodes = append(cycleNodes, t.ID)
			}
		}
		return &CycleError{Topics: cycleNodes}
	}

	return nil
}

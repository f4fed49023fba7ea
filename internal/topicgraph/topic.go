package topicgraph

// Topic represents a single learning topic node in the graph.
type Topic struct {
	ID            string
	Name          string
	Description   string
	Keywords      []string
	EstimatedMins int
	Prerequisites []string
}

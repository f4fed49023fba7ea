package topicgraph

import (
	"strings"
	"testing"
)

func TestLoad_ValidFile(t *testing.T) {
	raw := []byte(`{
		"topics": [
			{"id": "basics", "name": "Basics"},
			{"id": "advanced", "name": "Advanced", "prerequisites": ["basics"], "estimated_mins": 45}
		]
	}`)

	g, err := Load(raw)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
	topic, err := g.Topic("advanced")
	if err != nil {
		t.Fatalf("Topic(advanced): %v", err)
	}
	if topic.EstimatedMins != 45 {
		t.Errorf("EstimatedMins = %d, want 45", topic.EstimatedMins)
	}
}

func TestLoad_RejectsInvalidJSON(t *testing.T) {
	if _, err := Load([]byte(`{not json`)); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoad_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing topics", `{}`},
		{"empty topics", `{"topics": []}`},
		{"missing id", `{"topics": [{"name": "X"}]}`},
		{"empty id", `{"topics": [{"id": "", "name": "X"}]}`},
		{"unknown field", `{"topics": [{"id": "a", "name": "A", "difficulty": 3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected schema validation error, got nil")
			}
			if !strings.Contains(err.Error(), "schema") {
				t.Errorf("error should mention schema, got: %v", err)
			}
		})
	}
}

func TestLoad_RejectsCyclicGraph(t *testing.T) {
	raw := []byte(`{
		"topics": [
			{"id": "root", "name": "Root"},
			{"id": "a", "name": "A", "prerequisites": ["b"]},
			{"id": "b", "name": "B", "prerequisites": ["a"]}
		]
	}`)
	if _, err := Load(raw); err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}

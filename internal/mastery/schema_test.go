package mastery

import (
	"testing"
	"time"
)

func TestDecodeEvents_Valid(t *testing.T) {
	raw := []byte(`{
		"events": [
			{"topic": "algorithms", "kind": "quiz", "correct": true, "duration_secs": 90, "at": "2026-03-01T10:00:00Z"},
			{"topic": "algorithms", "kind": "revisit", "at": "2026-03-01T10:05:00Z"}
		]
	}`)

	events, err := DecodeEvents(raw)
	if err != nil {
		t.Fatalf("DecodeEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != EventQuiz || !events[0].Correct {
		t.Errorf("first event = %+v, want correct quiz", events[0])
	}
	if events[0].Duration != 90*time.Second {
		t.Errorf("Duration = %s, want 90s", events[0].Duration)
	}
	if events[1].Kind != EventRevisit {
		t.Errorf("second event kind = %q, want revisit", events[1].Kind)
	}
}

func TestDecodeEvents_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing events", `{}`},
		{"empty events", `{"events": []}`},
		{"missing topic", `{"events": [{"kind": "quiz", "at": "2026-03-01T10:00:00Z"}]}`},
		{"bad kind", `{"events": [{"topic": "a", "kind": "skim", "at": "2026-03-01T10:00:00Z"}]}`},
		{"negative duration", `{"events": [{"topic": "a", "kind": "quiz", "duration_secs": -1, "at": "2026-03-01T10:00:00Z"}]}`},
		{"unknown field", `{"events": [{"topic": "a", "kind": "quiz", "at": "2026-03-01T10:00:00Z", "score": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeEvents([]byte(tt.raw)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

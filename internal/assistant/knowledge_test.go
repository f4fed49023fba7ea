package assistant

import (
	"strings"
	"testing"

	"github.com/learnpath/learnpath/internal/topicgraph"
)

func testKB(t *testing.T) *KnowledgeBase {
	t.Helper()
	return NewKnowledgeBase(topicgraph.SeedGraph(), nil)
}

func TestKnowledgeBase_Greeting(t *testing.T) {
	kb := testKB(t)

	for _, q := range []string{"hello", "Hi there!", "hey"} {
		answer, ok := kb.Answer(q)
		if !ok {
			t.Fatalf("Answer(%q): expected a greeting", q)
		}
		if !strings.Contains(strings.ToLower(answer), "learning") {
			t.Errorf("Answer(%q) = %q, expected a greeting mentioning learning", q, answer)
		}
	}
}

func TestKnowledgeBase_GreetingNotSubstring(t *testing.T) {
	kb := testKB(t)

	// "this" contains "hi" but is not a greeting.
	answer, ok := kb.Answer("explain this thing called algorithms")
	if !ok {
		t.Fatal("expected an answer")
	}
	if strings.Contains(answer, "learning assistant") {
		t.Errorf("got greeting for a non-greeting question: %q", answer)
	}
}

func TestKnowledgeBase_Thanks(t *testing.T) {
	kb := testKB(t)

	answer, ok := kb.Answer("thanks, that helped")
	if !ok {
		t.Fatal("expected an answer")
	}
	if !strings.Contains(strings.ToLower(answer), "welcome") && !strings.Contains(strings.ToLower(answer), "help") {
		t.Errorf("unexpected thanks reply: %q", answer)
	}
}

func TestKnowledgeBase_DefinitionByName(t *testing.T) {
	kb := testKB(t)

	answer, ok := kb.Answer("what is data structures?")
	if !ok {
		t.Fatal("expected an answer")
	}
	if !strings.Contains(answer, "organize and store data") {
		t.Errorf("expected the data structures definition, got %q", answer)
	}
}

func TestKnowledgeBase_DefinitionByKeyword(t *testing.T) {
	kb := testKB(t)

	// "linked lists" is a keyword of data structures, not a topic name.
	answer, ok := kb.Answer("tell me about linked lists")
	if !ok {
		t.Fatal("expected an answer")
	}
	if !strings.Contains(answer, "Data Structures") {
		t.Errorf("expected a data structures answer, got %q", answer)
	}
}

func TestKnowledgeBase_Intents(t *testing.T) {
	kb := testKB(t)

	tests := []struct {
		question string
		want     string
	}{
		{"what are the key concepts of algorithms?", "Sorting, searching"},
		{"give me examples of databases", "library system"},
		{"what topics are related to algorithms?", "Data Structures"},
	}
	for _, tt := range tests {
		answer, ok := kb.Answer(tt.question)
		if !ok {
			t.Fatalf("Answer(%q): expected an answer", tt.question)
		}
		if !strings.Contains(answer, tt.want) {
			t.Errorf("Answer(%q) = %q, want substring %q", tt.question, answer, tt.want)
		}
	}
}

func TestKnowledgeBase_RelatedFollowsGraph(t *testing.T) {
	kb := testKB(t)

	answer, ok := kb.Answer("what comes after programming basics?")
	if !ok {
		t.Fatal("expected an answer")
	}
	// Programming basics has no prerequisites; all related topics are dependents.
	for _, want := range []string{"Data Structures", "Object-Oriented Programming"} {
		if !strings.Contains(answer, want) {
			t.Errorf("expected %q in related answer, got %q", want, answer)
		}
	}
}

func TestKnowledgeBase_UnknownTopic(t *testing.T) {
	kb := testKB(t)

	if _, ok := kb.Answer("what is quantum entanglement?"); ok {
		t.Fatal("expected no answer for an unknown topic")
	}

	fallback := kb.NotFound("what is quantum entanglement?")
	if !strings.Contains(fallback, "Algorithms") {
		t.Errorf("fallback should list known topics, got %q", fallback)
	}
}

func TestKnowledgeBase_Deterministic(t *testing.T) {
	kb := testKB(t)

	first, _ := kb.Answer("what is oop?")
	second, _ := kb.Answer("what is oop?")
	if first != second {
		t.Errorf("same question produced different answers: %q vs %q", first, second)
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		question string
		want     Intent
	}{
		{"what is an algorithm", IntentDefinition},
		{"define recursion", IntentDefinition},
		{"key concepts in databases", IntentConcepts},
		{"show me an example of sorting", IntentExamples},
		{"what topics are related to oop", IntentRelated},
		{"sorting", IntentDefinition},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.question); got != tt.want {
			t.Errorf("DetectIntent(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

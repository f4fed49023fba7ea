package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/learnpath/learnpath/internal/topicgraph"
)

func TestChatbot_KnowledgeBaseHitSkipsProvider(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "should not be used"})
	bot := NewChatbot(testKB(t), mock)

	answer, err := bot.Ask(context.Background(), "what is algorithms?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Step-by-step") {
		t.Errorf("expected the local definition, got %q", answer)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider should not be called on a knowledge base hit, got %d calls", mock.CallCount())
	}
}

func TestChatbot_FallsBackToProvider(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "Rust is a systems programming language."})
	bot := NewChatbot(testKB(t), mock)

	answer, err := bot.Ask(context.Background(), "what is rust?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Rust is a systems programming language." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}
}

func TestChatbot_NoProviderDegradesToNotFound(t *testing.T) {
	bot := NewChatbot(testKB(t), nil)

	answer, err := bot.Ask(context.Background(), "what is rust?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Algorithms") {
		t.Errorf("expected the not-found answer listing topics, got %q", answer)
	}
}

func TestChatbot_ProviderFailureDegrades(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	bot := NewChatbot(testKB(t), mock)

	answer, err := bot.Ask(context.Background(), "what is rust?")
	if err != nil {
		t.Fatalf("degradation should not surface an error, got %v", err)
	}
	if !strings.Contains(answer, "unreachable") {
		t.Errorf("expected an offline notice, got %q", answer)
	}
}

func TestChatbot_EmptyQuestion(t *testing.T) {
	bot := NewChatbot(testKB(t), nil)

	if _, err := bot.Ask(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for an empty question")
	}
}

func TestChatbot_SessionContextReachesPrompt(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "answer"})
	bot := NewChatbot(testKB(t), mock)
	bot.SetSession(SessionContext{
		User:      "alice",
		Mastery:   map[string]float64{"algorithms": 0.42},
		Suggested: []string{"Databases"},
	})

	if _, err := bot.Ask(context.Background(), "what is rust?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	system := mock.Calls[0].System
	for _, want := range []string{"alice", "algorithms: 0.42", "Databases"} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q:\n%s", want, system)
		}
	}
}

func TestChatbot_HistoryCarriesAcrossTurns(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Text: "first"},
		MockReply{Text: "second"},
	)
	bot := NewChatbot(testKB(t), mock)

	if _, err := bot.Ask(context.Background(), "what is rust?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := bot.Ask(context.Background(), "and what is zig?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages on second turn, got %d", len(second.Messages))
	}
	if second.Messages[1].Role != RoleAssistant || second.Messages[1].Content != "first" {
		t.Errorf("expected prior assistant turn in history, got %+v", second.Messages[1])
	}

	bot.Reset()
	if len(bot.History()) != 0 {
		t.Error("expected empty history after Reset")
	}
}

func TestChatbot_HistoryBounded(t *testing.T) {
	bot := NewChatbot(NewKnowledgeBase(topicgraph.SeedGraph(), nil), nil)

	for range maxHistoryTurns + 5 {
		if _, err := bot.Ask(context.Background(), "hello"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := len(bot.History()); got != maxHistoryTurns*2 {
		t.Fatalf("expected history capped at %d messages, got %d", maxHistoryTurns*2, got)
	}
}

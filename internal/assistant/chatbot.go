package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

const (
	defaultMaxTokens   = 512
	defaultTemperature = 0.7
	maxHistoryTurns    = 10
)

// SessionContext carries learner state into the LLM system prompt so answers
// can reference where the learner actually is on the path.
type SessionContext struct {
	User      string
	Mastery   map[string]float64
	Suggested []string
}

// Chatbot answers learner questions, trying the local knowledge base first
// and falling back to an LLM provider when one is configured. Without a
// provider it degrades to knowledge-base-only answers.
type Chatbot struct {
	kb       *KnowledgeBase
	provider Provider
	session  SessionContext
	history  []Message
}

// NewChatbot creates a chatbot. provider may be nil.
func NewChatbot(kb *KnowledgeBase, provider Provider) *Chatbot {
	return &Chatbot{kb: kb, provider: provider}
}

// SetSession updates the learner context used in LLM prompts.
func (c *Chatbot) SetSession(s SessionContext) {
	c.session = s
}

// HasProvider reports whether an LLM fallback is configured.
func (c *Chatbot) HasProvider() bool {
	return c.provider != nil
}

// Ask answers a single question. Knowledge-base hits never touch the
// provider. Provider failures degrade to the not-found answer instead of
// surfacing an error to the learner.
func (c *Chatbot) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	if answer, ok := c.kb.Answer(question); ok {
		c.remember(question, answer)
		return answer, nil
	}

	if c.provider == nil {
		answer := c.kb.NotFound(question)
		c.remember(question, answer)
		return answer, nil
	}

	conv := Conversation{
		System:      c.systemPrompt(),
		Messages:    append(append([]Message{}, c.history...), Message{Role: RoleUser, Content: question}),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	reply, err := c.provider.Reply(ctx, conv)
	if err != nil {
		answer := c.kb.NotFound(question) + " (The assistant is currently unreachable.)"
		c.remember(question, answer)
		return answer, nil
	}

	c.remember(question, reply.Text)
	return reply.Text, nil
}

// remember appends a turn to the history, keeping only the most recent turns.
func (c *Chatbot) remember(question, answer string) {
	c.history = append(c.history,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
	if len(c.history) > maxHistoryTurns*2 {
		c.history = c.history[len(c.history)-maxHistoryTurns*2:]
	}
}

// History returns a copy of the conversation so far.
func (c *Chatbot) History() []Message {
	return append([]Message{}, c.history...)
}

// Reset clears the conversation history.
func (c *Chatbot) Reset() {
	c.history = nil
}

func (c *Chatbot) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a concise learning assistant for a computer-science learning path. ")
	b.WriteString("Answer questions about programming topics clearly, in a few short paragraphs at most.")

	if c.session.User != "" {
		fmt.Fprintf(&b, "\n\nThe learner is %s.", c.session.User)
	}
	if len(c.session.Mastery) > 0 {
		topics := make([]string, 0, len(c.session.Mastery))
		for t := range c.session.Mastery {
			topics = append(topics, t)
		}
		sort.Strings(topics)
		b.WriteString("\nCurrent mastery scores:")
		for _, t := range topics {
			fmt.Fprintf(&b, "\n- %s: %.2f", t, c.session.Mastery[t])
		}
	}
	if len(c.session.Suggested) > 0 {
		fmt.Fprintf(&b, "\nSuggested next topics: %s.", strings.Join(c.session.Suggested, ", "))
	}
	return b.String()
}

package assistant

import "context"

// Provider is the abstraction over chat backends. The knowledge-base bot,
// the LLM providers and the test mock all implement it.
type Provider interface {
	// Reply answers the latest user message given the conversation so far.
	Reply(ctx context.Context, conv Conversation) (*Reply, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Conversation is the input to a single chat turn.
type Conversation struct {
	// System sets the assistant's role and constraints. The chatbot injects
	// the learner's mastery summary and current recommendations here.
	System string

	// Messages is the conversation history, oldest first. The last message
	// is the question being answered.
	Messages []Message

	// MaxTokens caps the response length. 0 uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0. Default 0.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Reply holds a provider's answer.
type Reply struct {
	Text  string
	Usage Usage
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// LastUserMessage returns the content of the most recent user message.
func (c Conversation) LastUserMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Content
		}
	}
	return ""
}

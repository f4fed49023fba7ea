package assistant

import (
	"context"
	"sync"
)

// MockReply is a canned reply for the MockProvider.
type MockReply struct {
	Text string
	Err  error
}

// MockProvider is a deterministic Provider for testing. It returns canned
// replies in FIFO order and records all conversations it sees.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	Calls   []Conversation
}

// NewMockProvider creates a MockProvider with the given canned replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Reply returns the next canned reply or ErrProviderUnavailable when the
// queue is empty.
func (m *MockProvider) Reply(_ context.Context, conv Conversation) (*Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, conv)

	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	r := m.replies[0]
	m.replies = m.replies[1:]

	if r.Err != nil {
		return nil, r.Err
	}
	return &Reply{Text: r.Text, Model: "mock"}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddReply appends a canned reply to the queue.
func (m *MockProvider) AddReply(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

// CallCount returns the number of Reply calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

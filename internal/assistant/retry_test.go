package assistant

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Text: "hello"},
	)
	p := WithRetry(mock, retryConfig())

	reply, err := p.Reply(context.Background(), Conversation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "hello" {
		t.Fatalf("unexpected text: %s", reply.Text)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockReply{Text: "recovered"},
	)
	p := WithRetry(mock, retryConfig())

	reply, err := p.Reply(context.Background(), Conversation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "recovered" {
		t.Fatalf("unexpected text: %s", reply.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Reply(context.Background(), Conversation{})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_EmptyResponseNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrEmptyResponse{Model: "mock"}},
		MockReply{Text: "should not be reached"},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Reply(context.Background(), Conversation{})
	if err == nil {
		t.Fatal("expected error")
	}
	var empty *ErrEmptyResponse
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyResponse, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellationNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockProvider(
		MockReply{Err: ctx.Err()},
		MockReply{Text: "should not be reached"},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Reply(ctx, Conversation{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

// blockingProvider waits for context cancellation and reports its error.
type blockingProvider struct{}

func (blockingProvider) Reply(ctx context.Context, _ Conversation) (*Reply, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_CapsSlowReply(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	start := time.Now()
	_, err := p.Reply(context.Background(), Conversation{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("deadline not enforced, took %v", elapsed)
	}
}

func TestTimeout_CoversAllRetryAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrRateLimit{Err: errors.New("slow down"), RetryAfter: time.Hour}},
		MockReply{Text: "should not be reached"},
	)
	p := WithTimeout(WithRetry(mock, retryConfig()), 5*time.Millisecond)

	_, err := p.Reply(context.Background(), Conversation{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call before the deadline, got %d", mock.CallCount())
	}
}

func TestTimeout_NonPositiveIsUnwrapped(t *testing.T) {
	mock := NewMockProvider(MockReply{Text: "ok"})
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("zero timeout must return the provider unwrapped")
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &ErrRateLimit{Err: errors.New("slow down"), RetryAfter: 2 * time.Millisecond}},
		MockReply{Text: "ok"},
	)
	p := WithRetry(mock, retryConfig())

	start := time.Now()
	reply, err := p.Reply(context.Background(), Conversation{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "ok" {
		t.Fatalf("unexpected text: %s", reply.Text)
	}
	if elapsed := time.Since(start); elapsed < 2*time.Millisecond {
		t.Fatalf("expected wait of at least 2ms, got %v", elapsed)
	}
}

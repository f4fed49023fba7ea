package assistant

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/learnpath/learnpath/internal/store"
)

// LoggingProvider is a decorator that records every chat request as an event.
type LoggingProvider struct {
	inner  Provider
	events store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, events store.EventRepo) Provider {
	return &LoggingProvider{inner: p, events: events}
}

func (l *LoggingProvider) Reply(ctx context.Context, conv Conversation) (*Reply, error) {
	start := time.Now()

	reply, err := l.inner.Reply(ctx, conv)

	data := store.ChatEventData{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if reply != nil {
		data.Model = reply.Model
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.events.AppendChat(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log chat event: %v\n", logErr)
	}

	return reply, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

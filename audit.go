package permscope

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DenialEvent records one failed permission check.
type DenialEvent struct {
	Timestamp  time.Time         `json:"timestamp"`
	Permission string            `json:"permission"`
	ScopeID    string            `json:"scope_id"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// DenialSink receives denial events from the audit dispatcher. Emit runs on
// the dispatcher goroutine and may block; slow sinks back-pressure the
// buffer, not the query path.
type DenialSink interface {
	Emit(ctx context.Context, event DenialEvent)
}

// NoOpSink discards all events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, DenialEvent) {}

// ChannelSink forwards events to a buffered channel for in-process
// consumers.
type ChannelSink struct {
	events chan DenialEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan DenialEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event DenialEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan DenialEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

func (s *JSONWriterSink) Emit(ctx context.Context, event DenialEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// ZapSink logs each denial as a structured warning.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{
		logger: logger,
	}
}

func (s *ZapSink) Emit(_ context.Context, event DenialEvent) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Warn("permission denied",
		zap.Time("timestamp", event.Timestamp),
		zap.String("permission", event.Permission),
		zap.String("scope_id", event.ScopeID),
	)
}

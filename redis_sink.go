package permscope

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisStreamSink appends denial events to a Redis stream (XADD), one entry
// per event with the JSON-encoded event under the "event" field. A maxLen of
// zero leaves the stream unbounded; a positive maxLen trims approximately
// (MAXLEN ~) so hot denial paths never pay for exact trimming.
//
// Stream consumption, retention, and alerting belong to the integrator; the
// sink only publishes.
type RedisStreamSink struct {
	client redis.UniversalClient
	stream string
	maxLen int64
}

func NewRedisStreamSink(client redis.UniversalClient, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

func (s *RedisStreamSink) Emit(ctx context.Context, event DenialEvent) {
	if s == nil || s.client == nil || s.stream == "" {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"event": data,
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	_ = s.client.XAdd(ctx, args).Err()
}

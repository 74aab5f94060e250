package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type countQuery struct {
	Limit int
}

func (countQuery) QueryName() string { return "count" }
func (q countQuery) Validate() error {
	if q.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

type otherQuery struct{}

func (otherQuery) QueryName() string { return "other" }
func (otherQuery) Validate() error   { return nil }

type countingRecorder struct {
	calls map[string]int
}

func (r *countingRecorder) RecordOperation(operation string, _ error, _ time.Duration) {
	r.calls[operation]++
}

func TestQueryBus_Ask(t *testing.T) {
	recorder := &countingRecorder{calls: map[string]int{}}
	b := NewQueryBus(TracingMiddleware(noop.NewTracerProvider().Tracer("test")), MetricsMiddleware(recorder))
	require.NoError(t, b.Register(countQuery{}, Typed(func(ctx context.Context, q countQuery) ([]int, error) {
		out := make([]int, q.Limit)
		for i := range out {
			out[i] = i
		}
		return out, nil
	})))

	got, err := AskAs[[]int](context.Background(), b, countQuery{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 1, recorder.calls["count"])

	_, err = b.Ask(context.Background(), countQuery{Limit: -1})
	assert.ErrorContains(t, err, "query validation failed")
	assert.Equal(t, 1, recorder.calls["count"], "invalid queries never reach the handler")

	_, err = b.Ask(context.Background(), otherQuery{})
	assert.True(t, errors.Is(err, ErrHandlerNotFound))

	assert.Error(t, b.Register(countQuery{}, Typed(func(ctx context.Context, q countQuery) (int, error) { return 0, nil })))
}

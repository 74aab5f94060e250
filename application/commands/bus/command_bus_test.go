package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	pkgerrors "graphd/pkg/errors"
)

type echoCommand struct {
	Value string
}

func (echoCommand) CommandName() string { return "echo" }
func (c echoCommand) Validate() error {
	if c.Value == "" {
		return pkgerrors.NewValidationError("value is required")
	}
	return nil
}

type unregisteredCommand struct{}

func (unregisteredCommand) CommandName() string { return "unregistered" }
func (unregisteredCommand) Validate() error     { return nil }

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.messages = append(l.messages, msg) }

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordOperation(operation string, err error, duration time.Duration) {
	m.Called(operation, err, duration)
}

func echoHandler() CommandHandler {
	return Typed(func(ctx context.Context, cmd echoCommand) (string, error) {
		if cmd.Value == "fail" {
			return "", pkgerrors.NewConflictError("refused")
		}
		return "echo:" + cmd.Value, nil
	})
}

func TestCommandBus_Send(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	result, err := SendAs[string](context.Background(), b, echoCommand{Value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", result)
}

func TestCommandBus_Errors(t *testing.T) {
	b := NewCommandBus()
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	t.Run("duplicate registration", func(t *testing.T) {
		assert.Error(t, b.Register(echoCommand{}, echoHandler()))
	})

	t.Run("unregistered command", func(t *testing.T) {
		_, err := b.Send(context.Background(), unregisteredCommand{})
		assert.True(t, errors.Is(err, ErrHandlerNotFound))
	})

	t.Run("validation keeps error type", func(t *testing.T) {
		_, err := b.Send(context.Background(), echoCommand{})
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("handler error keeps error type", func(t *testing.T) {
		_, err := b.Send(context.Background(), echoCommand{Value: "fail"})
		assert.True(t, pkgerrors.IsConflict(err))
		assert.Contains(t, err.Error(), "echo failed")
	})

	t.Run("wrong result type", func(t *testing.T) {
		_, err := SendAs[int](context.Background(), b, echoCommand{Value: "x"})
		assert.Error(t, err)
	})
}

func TestCommandBus_MiddlewareOrder(t *testing.T) {
	var order []string
	trace := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	b := NewCommandBus(trace("first"), trace("second"))
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	_, err := b.Send(context.Background(), echoCommand{Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestCommandBus_ObservabilityMiddleware(t *testing.T) {
	logger := &recordingLogger{}
	recorder := new(mockRecorder)
	recorder.On("RecordOperation", "echo", nil, mock.AnythingOfType("time.Duration")).Return().Once()
	recorder.On("RecordOperation", "echo", mock.Anything, mock.AnythingOfType("time.Duration")).Return().Once()

	b := NewCommandBus(
		TracingMiddleware(noop.NewTracerProvider().Tracer("test")),
		LoggingMiddleware(logger),
		MetricsMiddleware(recorder),
	)
	require.NoError(t, b.Register(echoCommand{}, echoHandler()))

	_, err := b.Send(context.Background(), echoCommand{Value: "ok"})
	require.NoError(t, err)
	_, err = b.Send(context.Background(), echoCommand{Value: "fail"})
	require.Error(t, err)

	recorder.AssertExpectations(t)
	assert.Equal(t, []string{"Executing command", "Command succeeded", "Executing command", "Command rejected"}, logger.messages)
}

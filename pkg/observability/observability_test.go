package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordOperation(t *testing.T) {
	// Arrange
	c := NewCollector("test")

	// Act
	c.RecordOperation("create_node", nil, time.Millisecond)
	c.RecordOperation("create_node", nil, time.Millisecond)
	c.RecordOperation("connect_nodes", errors.New("boom"), time.Millisecond)

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Operations.WithLabelValues("create_node", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Operations.WithLabelValues("connect_nodes", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.OperationDuration))
}

func TestCollector_SetGraphSize(t *testing.T) {
	c := NewCollector("test")

	c.SetGraphSize(4, 7)
	assert.Equal(t, 4.0, testutil.ToFloat64(c.Nodes))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.Edges))

	c.SetGraphSize(3, 5)
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Nodes))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.Edges))
}

func TestCollector_Handler(t *testing.T) {
	// Arrange
	c := NewCollector("graphd")
	c.RecordHTTPRequest(http.MethodGet, "/api/v2/nodes/{id}", http.StatusNotFound, time.Millisecond)

	// Act
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `graphd_http_requests_total{method="GET",route="/api/v2/nodes/{id}",status="404"} 1`)
}

func TestCollector_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("same")
		NewCollector("same")
	})
}

func TestInitTracing_Disabled(t *testing.T) {
	tp, err := InitTracing(context.Background(), TracingConfig{Enabled: false})
	require.NoError(t, err)

	_, span := tp.Tracer().Start(context.Background(), "noop")
	span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want string
	}{
		{name: "unset samples everything", rate: 0, want: "AlwaysOnSampler"},
		{name: "full rate", rate: 1, want: "AlwaysOnSampler"},
		{name: "ratio", rate: 0.25, want: "TraceIDRatioBased{0.25}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, createSampler(tt.rate).Description(), tt.want)
		})
	}
}

package infrastructure

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTelInitialization(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	providers, err := InitializeOTel(nil, logger)
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := &OTelConfig{
		ServiceName:   ServiceName,
		EnableTracing: false,
		EnableMetrics: false,
	}

	providers, err := InitializeOTel(cfg, logger)
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	// Tracer falls back to the global no-op provider.
	assert.NotNil(t, providers.Tracer)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestConverterMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	providers, err := InitializeOTel(DefaultOTelConfig(), logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx := context.Background()
	providers.Metrics.RecordParse(ctx, "feko", 3, 1)
	providers.Metrics.RecordParseFailure(ctx, "feko")

	// Counters must show up on the Prometheus scrape endpoint.
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "emdata_files_parsed")
	assert.Contains(t, body, "emdata_datasets_produced")
	assert.Contains(t, body, "emdata_rows_dropped")
	assert.Contains(t, body, "emdata_files_failed")
}

func TestConverterMetricsNilReceiver(t *testing.T) {
	var m *ConverterMetrics
	// Must not panic when metrics are disabled.
	m.RecordParse(context.Background(), "feko", 1, 0)
	m.RecordParseFailure(context.Background(), "feko")
}

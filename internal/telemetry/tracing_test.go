package telemetry_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracer(t *testing.T) {
	t.Run("Without Exporter", func(t *testing.T) {
		// Act
		shutdown, err := telemetry.InitTracer(t.Context(), config.Otel{ServiceName: "storefront-test", SamplerRatio: 1}, "test")

		// Assert
		require.NoError(t, err)
		require.NotNil(t, shutdown)

		_, span := otel.Tracer("test").Start(t.Context(), "span")
		assert.True(t, span.SpanContext().IsValid(), "spans should be recorded by the sdk provider")
		span.End()

		assert.NoError(t, shutdown(t.Context()))
	})

	t.Run("With Exporter Endpoint", func(t *testing.T) {
		shutdown, err := telemetry.InitTracer(t.Context(), config.Otel{
			ServiceName:      "storefront-test",
			ExporterEndpoint: "http://127.0.0.1:4318/v1/traces",
			SamplerRatio:     0,
		}, "test")

		require.NoError(t, err)
		assert.NoError(t, shutdown(t.Context()))
	})
}

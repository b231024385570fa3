package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "", "eloquence-api")
	require.NoError(t, err)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_InstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	// Non-routable, nothing is exported before shutdown.
	shutdown, err := Setup(context.Background(), "http://192.0.2.1:4318", "eloquence-api")
	require.NoError(t, err)

	assert.NotEqual(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

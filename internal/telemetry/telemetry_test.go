package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lingo/backend/internal/telemetry"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "lingo-test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.NotNil(t, telemetry.Tracer())
}

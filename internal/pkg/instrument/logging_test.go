package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestLogging_CriticalSeverity(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newRootHandler("elasticmail", nil, newJSONHandler(&buf, slog.LevelInfo)))

	// Act
	logger.Log(context.Background(), LevelCritical, "Failed to send email")

	// Assert
	line := decodeLine(t, &buf)
	assert.Equal(t, "CRITICAL", line["severity"])
	assert.Equal(t, "elasticmail", line["service"])
	assert.Equal(t, "Failed to send email", line["msg"])
}

func TestLogging_MaskAndCorrelation(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newRootHandler("elasticmail", []string{"api_key"}, newJSONHandler(&buf, slog.LevelInfo)))
	ctx := SetCorrelationID(context.Background(), "cid-1")

	// Act
	logger.InfoContext(ctx, "calling provider", "api_key", "secret", "params", map[string]string{"api_key": "secret", "to": "a@x.com"})

	// Assert
	line := decodeLine(t, &buf)
	assert.Equal(t, "***", line["api_key"])
	assert.Equal(t, "cid-1", line["_cID"])
	params, ok := line["params"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "***", params["api_key"])
	assert.Equal(t, "a@x.com", params["to"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelCritical, ParseLevel(" critical "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestGetCorrelationID_Missing(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
}

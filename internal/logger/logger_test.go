package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf).WithComponent("email").WithRequestID("req-1").WithUserID("u1")
	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "email", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestHTTPRequest(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf).HTTPRequest("GET", "/api/v1/surprises/joke", 200, 5*time.Millisecond, "10.0.0.1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/v1/surprises/joke", entry["path"])
	assert.EqualValues(t, 200, entry["status"])
	assert.Equal(t, "10.0.0.1", entry["client_ip"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().WithComponent("x").Error().Msg("discarded")
	})
}

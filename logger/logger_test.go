package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "food-api", "info")

	l.Error("order_create_failed", "req-1", "could not create order", errors.New("boom"), slog.Int("order_id", 5))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "could not create order", line["msg"])
	assert.Equal(t, "food-api", line["service"])
	assert.Equal(t, "order_create_failed", line["action"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, float64(5), line["order_id"])
	assert.Equal(t, map[string]any{"msg": "boom"}, line["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "food-api", "warn")

	l.Info("startup", "", "ignored")
	l.Debug("startup", "", "ignored")
	assert.Zero(t, buf.Len())

	l.Warn("startup", "", "kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.NotContains(t, buf.String(), "request_id")
}

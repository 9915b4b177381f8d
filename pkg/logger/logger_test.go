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

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("db: gone", "attempt", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "CRITICAL", line["level"])
	assert.Equal(t, "db: gone", line["msg"])
	assert.EqualValues(t, 3, line["attempt"])
}

func TestBusinessErrorLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.BusinessError("ledger: refused", errors.New("insufficient stock"), "hospital_id", 1)
	log.InternalError("ledger: skipped", nil)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "insufficient stock", line["err"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("", "development"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", "production"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING", "production"))
	assert.Equal(t, LevelCritical, ParseLevel("fatal", "production"))
}

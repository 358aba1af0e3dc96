package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogHelpers_EmitStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	LogWarn("skipped unusable rows", Fields{"sheet": "charges", "count": 3})
	LogInfo("workbook loaded", Fields{"certifications": 8})
	LogDebug("sheet loaded", Fields{"records": 6})
	LogError(errors.New("boom"), "workbook import failed", Fields{"path": "books.xlsx"})

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"sheet":"charges"`)
	assert.Contains(t, out, `"count":3`)
	assert.Contains(t, out, `"certifications":8`)
	assert.Contains(t, out, `"records":6`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"path":"books.xlsx"`)
}

func TestSetupLogger_AcceptsKnownFormats(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	assert.NoError(t, SetupLogger(slog.LevelInfo, "console"))
	assert.NoError(t, SetupLogger(slog.LevelDebug, "json"))
}

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLevel(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    slog.Level
		expectErr bool
	}{
		{name: "empty is info", input: "", expect: slog.LevelInfo},
		{name: "debug", input: "debug", expect: slog.LevelDebug},
		{name: "upper case", input: "WARN", expect: slog.LevelWarn},
		{name: "error", input: "error", expect: slog.LevelError},
		{name: "unknown", input: "verbose", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseLevel(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_Logger_levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelInfo)

	l.Debug("hidden")
	l.Infof("session %s created", "abc")
	l.With("session", "abc").Warn("slow")

	dec := json.NewDecoder(&buf)
	var records []map[string]any
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}

	require.Len(t, records, 2)
	assert.Equal(t, "session abc created", records[0]["msg"])
	assert.Equal(t, "WARN", records[1]["level"])
	assert.Equal(t, "abc", records[1]["session"])
}

func Test_Logger_nil(t *testing.T) {
	var l *Logger

	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Debugf("x %d", 1)
		assert.Nil(t, l.With("k", "v"))
	})
}

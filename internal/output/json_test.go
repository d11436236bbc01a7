// Copyright 2026 The Merchgroup Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJSONFormatter() *JSONFormatter {
	return &JSONFormatter{nowFunc: fixedNow}
}

func TestJSONFormatterName(t *testing.T) {
	assert.Equal(t, "json", NewJSONFormatter().Name())
}

func TestJSONFormatter_Document(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(sampleDocument(), &buf))

	var got Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got.Metadata.RunID)
	assert.Equal(t, "exact", got.Metadata.Method)
	assert.InDelta(t, 0.8, got.Metadata.Threshold, 1e-9)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, "Y Cafe, Shibuya", got.Rows[1].MerchantName)
	assert.Equal(t, 70, got.Rows[1].GroupCount)
	assert.NotEmpty(t, got.Coverage)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	row := raw["rows"].([]any)[0].(map[string]any)
	for _, key := range []string{"keyword", "merchant_name", "count", "group_count", "cumsum_count", "cumsum_percent"} {
		assert.Contains(t, row, key)
	}
}

func TestJSONFormatter_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(Document{}, &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, []any{}, raw["rows"])
	assert.Equal(t, []any{}, raw["coverage"])

	md := raw["metadata"].(map[string]any)
	_, err := uuid.Parse(md["run_id"].(string))
	assert.NoError(t, err, "a run id is generated when missing")
	assert.Equal(t, "2026-02-07T12:00:00Z", md["generated_at"])
}

func TestJSONFormatter_PrettyByDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestJSONFormatter().Format(sampleDocument(), &buf))
	assert.Greater(t, strings.Count(buf.String(), "\n"), 5)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestJSONFormatter_Compact(t *testing.T) {
	f := &JSONFormatter{Compact: true, nowFunc: fixedNow}
	var buf bytes.Buffer
	require.NoError(t, f.Format(sampleDocument(), &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestJSONFormatter_CompactForFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	file, err := os.Create(path) //nolint:gosec // test temp file
	require.NoError(t, err)
	require.NoError(t, newTestJSONFormatter().Format(sampleDocument(), file))
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path) //nolint:gosec // test temp file
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestJSONFormatter_WriteError(t *testing.T) {
	err := newTestJSONFormatter().Format(sampleDocument(), failWriter{})
	assert.ErrorContains(t, err, "write json")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

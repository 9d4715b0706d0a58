package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, JSON, false)
	require.NoError(t, err)

	log.Info().Int("angles", 180).Msg("sinogram computed")
	log.Debug().Msg("hidden at info level")

	var event map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &event))
	assert.Equal(t, "sinogram computed", event["message"])
	assert.Equal(t, "info", event["level"])
	assert.EqualValues(t, 180, event["angles"])

	runID, ok := event["run_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(runID)
	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "hidden at info level")
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Console, true)
	require.NoError(t, err)

	log.Debug().Msg("filter applied")
	assert.Contains(t, buf.String(), "filter applied")
}

func TestUnknownFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Format("xml"), false)
	assert.Error(t, err)
}

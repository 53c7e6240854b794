package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Prod(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("id", "abc").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "students-api", entry["service"])
	assert.Equal(t, "prod", entry["env"])
	assert.Equal(t, "abc", entry["id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewWithWriter_Staging(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("staging", &buf)

	log.Debug().Msg("debugging")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestNewWithWriter_DevIsConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("dev", &buf)

	log.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

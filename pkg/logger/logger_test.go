package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestComponentAdicionaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf).Component("ledger")
	l.Info().Str("epi_id", "epi-1").Msg("baixa")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, "epi-1", line["epi_id"])
	assert.Equal(t, "baixa", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestNopNaoEscreve(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().Error().Msg("descartado")
	})
}

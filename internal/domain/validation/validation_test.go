package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/epi-control/internal/domain/validation"
)

func TestValidCPF(t *testing.T) {
	cases := map[string]bool{
		"":               true,
		"529.982.247-25": true,
		"52998224725":    true,
		"529.982.247-24": false,
		"111.111.111-11": false,
		"123":            false,
	}
	for in, want := range cases {
		assert.Equal(t, want, validation.ValidCPF(in), in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := validation.ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"2026-02-30", "28/02/2026", "", "2026-13-01"} {
		_, err := validation.ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalDate(t *testing.T) {
	d, err := validation.ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = validation.ParseOptionalDate("2027-01-15")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "2027-01-15", validation.FormatDate(d))
}

func TestParseTimestamp(t *testing.T) {
	ts, err := validation.ParseTimestamp("2026-10-18T10:00:00.500-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 18, 13, 0, 0, 500000000, time.UTC), ts)

	ts, err = validation.ParseTimestamp("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, 18, ts.Day())
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "joao conceicao", validation.FoldKey("  João Conceição "))
	assert.Equal(t, "sao paulo tecnico", validation.SearchKey("São Paulo", "", "Técnico"))
	assert.Equal(t, "abc", validation.SanitizeLike("a%b_c"))
}

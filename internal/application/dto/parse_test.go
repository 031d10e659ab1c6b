package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	valid := map[string]string{
		`12.5`:          "12.50",
		`"19.99"`:       "19.99",
		`" 7 "`:         "7.00",
		`0`:             "0.00",
		`1.005`:         "1.01",
		`1e2`:           "100.00",
		`9999999999.99`: "9999999999.99",
	}
	for in, want := range valid {
		d, err := ParsePrice(json.RawMessage(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, d.StringFixed(2), in)
	}

	for _, in := range []string{`-1`, `"-0.01"`, `"abc"`, `true`, `{}`, `[]`, `""`, `"NaN"`, `10000000000`} {
		_, err := ParsePrice(json.RawMessage(in))
		assert.Error(t, err, in)
	}
}

func TestParseInt(t *testing.T) {
	valid := map[string]int64{`5`: 5, `"42"`: 42, `" 3 "`: 3, `5.0`: 5, `-2`: -2, `0`: 0}
	for in, want := range valid {
		n, err := ParseInt(json.RawMessage(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, n, in)
	}

	for _, in := range []string{`5.7`, `"5.0"`, `"x"`, `false`, `null`, `1e30`, `[1]`} {
		_, err := ParseInt(json.RawMessage(in))
		assert.Error(t, err, in)
	}
}

func TestParseNonNegativeInt(t *testing.T) {
	_, err := ParseNonNegativeInt(json.RawMessage(`-1`))
	assert.Error(t, err)

	n, err := ParseNonNegativeInt(json.RawMessage(`10`))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(json.RawMessage(" null ")))
	assert.False(t, IsMissing(json.RawMessage("0")))
}

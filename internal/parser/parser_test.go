package parser

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(slog.Default())
}

func TestNewParser_NilLogger(t *testing.T) {
	require.NotNil(t, NewParser(nil).logger)
}

func TestClean(t *testing.T) {
	in := []string{`"a"`, `"{""k"":1}"`}
	out, err := clean(in, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", `{"k":1}`}, out)
	assert.Equal(t, `"a"`, in[0], "input is not mutated")

	_, err = clean(in, 3)
	assert.ErrorIs(t, err, ErrMissingArgs)
}

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"integer", "3", 3, false},
		{"zero", "0", 0, false},
		{"float with decimals", "3.00", 3, false},
		{"negative", "-1", -1, false},
		{"padded", " 12 ", 12, false},
		{"fractional rejects", "2.5", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFloat(t *testing.T) {
	v, err := parseFloat(" 0.875 ")
	require.NoError(t, err)
	assert.Equal(t, 0.875, v)

	_, err = parseFloat("heavy")
	assert.Error(t, err)
}

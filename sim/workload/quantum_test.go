package workload

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantum(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"3", 3},
		{" 10\n", 10},
		{"0", 0},
		{"-4", -4},
		{"+2", 2},
	}
	for _, tc := range tests {
		got, err := ParseQuantum(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseQuantum_NotANumber_ReturnsQuantumError(t *testing.T) {
	for _, in := range []string{"", "abc", "3x", "1.5"} {
		_, err := ParseQuantum(in)

		var qerr *QuantumError
		require.True(t, errors.As(err, &qerr), "input %q", in)
		assert.Equal(t, in, qerr.Text)
		assert.True(t, errors.Is(err, strconv.ErrSyntax), "input %q", in)
	}
}

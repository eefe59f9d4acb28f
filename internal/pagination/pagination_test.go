package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"abc":  1,
		"0":    1,
		"-3":   1,
		"1":    1,
		"7":    7,
		"2.5":  1,
		" 2":   1,
		"9999": 9999,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseNumber(raw), "raw %q", raw)
	}
}

func TestOffset(t *testing.T) {
	require.Equal(t, 0, Offset(1, 10))
	require.Equal(t, 10, Offset(2, 10))
	require.Equal(t, 40, Offset(5, 10))
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 1, TotalPages(1, 10))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 2, TotalPages(13, 10))
}

func TestNewPageFlags(t *testing.T) {
	first := New([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 1, 10, 13)
	require.True(t, first.HasNext)
	require.False(t, first.HasPrevious)

	last := New([]int{11, 12, 13}, 2, 10, 13)
	require.False(t, last.HasNext)
	require.True(t, last.HasPrevious)
}

func TestNewPagePastTheEndIsEmptyNotAnError(t *testing.T) {
	beyond := New[int](nil, 9, 10, 13)
	require.NotNil(t, beyond.Items)
	require.Empty(t, beyond.Items)
	require.False(t, beyond.HasNext)
	require.True(t, beyond.HasPrevious)
	require.EqualValues(t, 13, beyond.TotalCount)
}

package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntDefault(t *testing.T) {
	require.Equal(t, 3, ParseIntDefault("3", 1))
	require.Equal(t, 1, ParseIntDefault("", 1))
	require.Equal(t, 7, ParseIntDefault("abc", 7))
}

func TestCalculate(t *testing.T) {
	cases := []struct {
		name              string
		page, size        int
		offset, wantLimit int
	}{
		{"defaults", 0, 0, 0, DefaultPageSize},
		{"second page", 2, 6, 6, 6},
		{"size capped", 1, 500, 0, MaxPageSize},
		{"negative page", -4, 10, 0, 10},
		{"huge page capped", math.MaxInt, 100, (MaxPage - 1) * 100, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := Calculate(tc.page, tc.size)
			require.Equal(t, tc.offset, offset)
			require.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestMeta(t *testing.T) {
	m := Meta(2, 6, 13)
	require.Equal(t, int64(3), m.TotalPages)
	require.True(t, m.HasPrev)
	require.True(t, m.HasNext)

	m = Meta(3, 6, 13)
	require.False(t, m.HasNext)

	m = Meta(1, 6, 0)
	require.Equal(t, int64(0), m.TotalPages)
	require.False(t, m.HasPrev)
	require.False(t, m.HasNext)
}

func TestMetaHugePage(t *testing.T) {
	m := Meta(math.MaxInt, 6, 13)
	require.Equal(t, MaxPage, m.Page)
	require.True(t, m.HasPrev)
	require.False(t, m.HasNext)
}

package student

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		raw  string
		def  int64
		want int64
	}{
		{raw: "", def: 10, want: 10},
		{raw: "3", def: 1, want: 3},
		{raw: " 3", def: 1, want: 3},
		{raw: "+3", def: 1, want: 3},
		{raw: "3rd", def: 1, want: 3},
		{raw: "2.9", def: 1, want: 2},
		{raw: "abc", def: 10, want: 10},
		{raw: "0", def: 10, want: 10},
		{raw: "-0", def: 10, want: 10},
		{raw: "-5", def: 10, want: 1},
		{raw: "-", def: 10, want: 10},
		{raw: "99999999999999999999999", def: 1, want: math.MaxInt32},
		{raw: "3000000000", def: 1, want: math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePageParam(tt.raw, tt.def))
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int64
	}{
		{total: 0, size: 10, want: 0},
		{total: 1, size: 10, want: 1},
		{total: 10, size: 10, want: 1},
		{total: 11, size: 10, want: 2},
		{total: 25, size: 10, want: 3},
		{total: 7, size: 1, want: 7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestDecodeRecord(t *testing.T) {
	rec, err := decodeRecord(nil)
	assert.NoError(t, err)
	assert.Empty(t, rec)
}

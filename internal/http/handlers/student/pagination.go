package student

import (
	"math"
	"strconv"
	"strings"
)

const (
	defaultPage = 1
	defaultSize = 10

	// maxPageParam keeps (page-1)*size well inside int64.
	maxPageParam = math.MaxInt32
)

// parsePageParam reads a page or size query value leniently: leading
// whitespace is skipped and the leading integer prefix is used, so "3",
// " 3" and "3rd" all read as 3. Missing, non-numeric and zero values fall
// back to def; negative values clamp to 1.
func parsePageParam(raw string, def int64) int64 {
	s := strings.TrimLeft(raw, " \t\n\r")

	sign := int64(1)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return def
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > maxPageParam {
		n = maxPageParam
	}

	switch {
	case n == 0:
		return def
	case sign < 0:
		return 1
	default:
		return n
	}
}

// totalPages is ceil(total/size). size is always at least 1.
func totalPages(total, size int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

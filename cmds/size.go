package cmds

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var sizeSuffixes = map[byte]uint64{
	'k': 1 << 10,
	'm': 1 << 20,
	'g': 1 << 30,
}

// parseSize parses an unsigned count with an optional binary k, m or g suffix, like 64k.
func parseSize(str string) (uint64, error) {
	str = strings.ReplaceAll(strings.ToLower(str), "_", "")
	multiplier := uint64(1)
	if len(str) > 0 {
		if m, ok := sizeSuffixes[str[len(str)-1]]; ok {
			multiplier = m
			str = str[:len(str)-1]
		}
	}
	v, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint64/multiplier {
		return 0, fmt.Errorf("%s: %w", str, strconv.ErrRange)
	}
	return v * multiplier, nil
}

func parseSignedSize(str string) (int64, error) {
	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}
	v, err := parseSize(str)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%s: %w", str, strconv.ErrRange)
	}
	if negative {
		return -int64(v), nil
	}
	return int64(v), nil
}

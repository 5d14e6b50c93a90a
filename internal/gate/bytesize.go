package gate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// byteSizeUnits maps a lowercase unit suffix to its byte multiplier.
// The empty suffix means plain bytes.
var byteSizeUnits = map[string]int64{
	"":   1,
	"b":  1,
	"kb": 1 << 10,
	"mb": 1 << 20,
	"gb": 1 << 30,
}

// ParseByteSize converts a human size string such as "10mb" or "512kb"
// into a byte count. Suffixes are case-insensitive; a bare number is
// interpreted as bytes. A malformed string is a configuration error.
func ParseByteSize(value string) (int64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return 0, fmt.Errorf("empty size string")
	}
	split := len(trimmed)
	for i, r := range trimmed {
		if r < '0' || r > '9' {
			split = i
			break
		}
	}
	digits := trimmed[:split]
	unit := strings.TrimSpace(trimmed[split:])
	if digits == "" {
		return 0, fmt.Errorf("invalid size string %q", value)
	}
	multiplier, ok := byteSizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q in %q", unit, value)
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size string %q: %w", value, err)
	}
	if amount > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return amount * multiplier, nil
}

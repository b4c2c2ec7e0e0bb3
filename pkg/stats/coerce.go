package stats

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRegex = regexp.MustCompile(`[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

	// Thousands grouping with spaces ("10 000 habitants"): a leading group
	// of one to three digits, not part of a longer number or a fraction,
	// followed by groups of exactly three digits.
	digitGroupRegex = regexp.MustCompile(`(^|[^\d.])(\d{1,3}(?:[\s\x{00A0}\x{202F}]\d{3})+)\b`)

	groupSpaceRegex = regexp.MustCompile(`[\s\x{00A0}\x{202F}]`)
)

// Number coerces a field value of unknown representation into a float64.
//
// Numbers are returned unchanged. Text has its grouping separators and
// percent markers removed, then the first decimal number found in it is
// parsed, which drops unit text such as "l/s" or "pour 10 000 habitants".
// Anything else, including empty text and absent values, yields 0.
// The result is always finite.
func Number(v interface{}) float64 {
	var f float64

	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		f = parseNumber(string(n))
	case string:
		f = parseNumber(n)
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = collapseGroups(s)

	m := numberRegex.FindString(s)
	if m == "" {
		return 0
	}

	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// collapseGroups removes the grouping spaces of space-separated thousands
// and leaves separate numbers apart.
func collapseGroups(s string) string {
	return digitGroupRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := digitGroupRegex.FindStringSubmatch(m)
		return sub[1] + groupSpaceRegex.ReplaceAllString(sub[2], "")
	})
}

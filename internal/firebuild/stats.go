package firebuild

import (
	"strings"

	"github.com/grafana/regexp"
	"github.com/shopspring/decimal"
)

var (
	// A zero "Cache size" line; the non-digit keeps "10.00 kB" from matching
	emptyCachePattern = regexp.MustCompile(`Cache size.*[^0-9]0\.00 kB`)

	cacheSizePattern = regexp.MustCompile(`Cache size:?\s*([0-9]+(?:\.[0-9]+)?)\s*([kMGTP]?i?B)`)
)

// SummaryHeader titles the statistics block in the job summary
const SummaryHeader = "## Firebuild Cache Hit Statistics"

func containsVerboseFlag(help string) bool {
	return strings.Contains(help, verboseFlag)
}

// CacheIsEmpty reports whether stats contain a zero sized cache line
func CacheIsEmpty(stats string) bool {
	return emptyCachePattern.MatchString(stats)
}

// Verbosity maps the "verbose" input to the flag suffix for "firebuild -s".
// ok is false for unrecognised settings, which map to no flag.
func Verbosity(setting string) (flag string, ok bool) {
	switch setting {
	case "0":
		return "", true
	case "1":
		return " -v", true
	case "2":
		return " -vv", true
	default:
		return "", false
	}
}

// SummaryBlock renders stats as a Markdown job summary section
func SummaryBlock(stats string) string {
	return SummaryHeader + "\n```\n" + stats + "\n```\n"
}

// Size is a cache size as reported by firebuild
type Size struct {
	Value decimal.Decimal
	Unit  string
}

func (s Size) String() string {
	return s.Value.StringFixed(2) + " " + s.Unit
}

// ParseCacheSize extracts the "Cache size" value from stats.
// It is informational only; CacheIsEmpty decides whether to save.
func ParseCacheSize(stats string) (Size, bool) {
	m := cacheSizePattern.FindStringSubmatch(stats)
	if m == nil {
		return Size{}, false
	}
	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return Size{}, false
	}
	return Size{Value: value, Unit: m[2]}, true
}

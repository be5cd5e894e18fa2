package fetch

import (
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05"

var durationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// DurationToSeconds converts an ISO 8601 duration like "PT1H2M3S" to whole
// seconds. A code that does not match the format, or carries no components
// at all, is an error.
func DurationToSeconds(code string) (int, error) {
	matches := durationPattern.FindStringSubmatch(code)
	if matches == nil {
		return 0, fmt.Errorf("malformed duration %q", code)
	}

	units := []int{24 * 60 * 60, 60 * 60, 60, 1}
	seconds, found := 0, false
	for i, unit := range units {
		if matches[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return 0, fmt.Errorf("malformed duration %q: %w", code, err)
		}
		seconds += n * unit
		found = true
	}
	if !found {
		return 0, fmt.Errorf("malformed duration %q", code)
	}

	return seconds, nil
}

// NormalizeTimestamp converts an RFC 3339 timestamp to local time in
// "YYYY-MM-DD HH:MM:SS" form.
func NormalizeTimestamp(code string) (string, error) {
	t, err := time.Parse(time.RFC3339, code)
	if err != nil {
		return "", fmt.Errorf("malformed timestamp %q: %w", code, err)
	}

	return t.Local().Format(timestampFormat), nil
}

// CompactCount strips everything but digits from raw, divides by one million
// and rounds to two decimals. Input without any digits yields an invalid
// NullFloat64, which persists as NULL.
func CompactCount(raw string) sql.NullFloat64 {
	digits := make([]rune, 0, len(raw))
	for _, c := range raw {
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	count, err := strconv.ParseFloat(string(digits), 64)
	if err != nil {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{
		Float64: math.Round(count/1e6*100) / 100,
		Valid:   true,
	}
}

func CurrentLocalTimestamp() string {
	return time.Now().Format(timestampFormat)
}

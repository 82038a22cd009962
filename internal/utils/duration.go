package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ucmiku/CS307ProjectII/domain"
)

// ISO-8601 durations in the PnDTnHnMnS pattern: days plus a time section,
// optional sign per component, fractional seconds up to nanosecond precision.
// Months and years are not representable.
var isoDurationPattern = regexp.MustCompile(
	`(?i)^([-+]?)P(?:([-+]?\d+)D)?(T(?:([-+]?\d+)H)?(?:([-+]?\d+)M)?(?:([-+]?\d+)(?:[.,](\d{0,9}))?S)?)?$`)

// ParseISODuration parses s into a normalized elapsed time. Malformed input,
// a negative result, and a result outside the representable range all fail
// with domain.ErrInvalidDuration.
func ParseISODuration(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: blank input", domain.ErrInvalidDuration)
	}

	m := isoDurationPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
	}
	sign, days, tSection, hours, minutes, seconds, fraction := m[1], m[2], m[3], m[4], m[5], m[6], m[7]

	// "P" alone, "PT" alone, and a fraction without seconds are all invalid.
	if days == "" && hours == "" && minutes == "" && seconds == "" {
		return 0, fmt.Errorf("%w: %q has no components", domain.ErrInvalidDuration, s)
	}
	if tSection != "" && hours == "" && minutes == "" && seconds == "" {
		return 0, fmt.Errorf("%w: %q has an empty time section", domain.ErrInvalidDuration, s)
	}

	var totalSecs int64
	for _, part := range []struct {
		text  string
		scale int64
	}{
		{days, 86400},
		{hours, 3600},
		{minutes, 60},
		{seconds, 1},
	} {
		if part.text == "" {
			continue
		}
		n, err := strconv.ParseInt(part.text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDuration, s)
		}
		scaled, ok := mulInt64(n, part.scale)
		if !ok {
			return 0, fmt.Errorf("%w: %q overflows", domain.ErrInvalidDuration, s)
		}
		totalSecs, ok = addInt64(totalSecs, scaled)
		if !ok {
			return 0, fmt.Errorf("%w: %q overflows", domain.ErrInvalidDuration, s)
		}
	}

	var nanos int64
	if fraction != "" {
		padded := fraction + strings.Repeat("0", 9-len(fraction))
		nanos, _ = strconv.ParseInt(padded, 10, 64)
		if seconds != "" && strings.HasPrefix(strings.TrimSpace(seconds), "-") {
			nanos = -nanos
		}
	}

	if sign == "-" {
		totalSecs, nanos = -totalSecs, -nanos
	}

	if totalSecs > math.MaxInt64/int64(time.Second) || totalSecs < math.MinInt64/int64(time.Second) {
		return 0, fmt.Errorf("%w: %q overflows", domain.ErrInvalidDuration, s)
	}
	d := time.Duration(totalSecs)*time.Second + time.Duration(nanos)

	if d < 0 {
		return 0, fmt.Errorf("%w: negative result", domain.ErrInvalidDuration)
	}
	return d, nil
}

// AddDurations returns a+b, failing on overflow. Used to derive
// total = cook + prep.
func AddDurations(a, b time.Duration) (time.Duration, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: sum overflows", domain.ErrInvalidDuration)
	}
	if sum < 0 {
		return 0, fmt.Errorf("%w: negative result", domain.ErrInvalidDuration)
	}
	return sum, nil
}

// FormatISODuration renders d in the canonical PTnHnMnS form; the zero
// duration renders as PT0S.
func FormatISODuration(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}

	var b strings.Builder
	b.WriteString("PT")

	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	secs := d / time.Second
	nanos := d - secs*time.Second

	if hours != 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes != 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	if secs != 0 || nanos != 0 || (hours == 0 && minutes == 0) {
		if nanos == 0 {
			fmt.Fprintf(&b, "%dS", secs)
		} else {
			frac := strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
			fmt.Fprintf(&b, "%d.%sS", secs, frac)
		}
	}
	return b.String()
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

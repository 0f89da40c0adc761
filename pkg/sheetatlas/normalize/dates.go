package normalize

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

const (
	// serialTooLarge1900 is the first legacy serial in year 10000.
	serialTooLarge1900 = 2958466
	serialTooLarge1904 = serialTooLarge1900 - models.EpochOffsetDays

	// leapBugSerial is 1900-02-29, a day that never existed.
	leapBugSerial = 60

	msPerDay = 86400000
)

var (
	epoch1904       = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	epoch1900       = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	epoch1900Minus1 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
)

// serialToTime converts an Excel serial to a wall clock time. ok is false
// for negative serials and serials in year 10000 or later.
func serialToTime(serial float64, mode models.DateEpochMode) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 0 {
		return time.Time{}, false
	}
	tooLarge := float64(serialTooLarge1900)
	if mode == models.EpochModern1904 {
		tooLarge = serialTooLarge1904
	}
	if serial >= tooLarge {
		return time.Time{}, false
	}

	days := int(math.Floor(serial))
	ms := int64(math.Round((serial - float64(days)) * msPerDay))

	var epoch time.Time
	switch {
	case mode == models.EpochModern1904:
		epoch = epoch1904
	case days < leapBugSerial:
		epoch = epoch1900
	case days == leapBugSerial:
		// Skip the phantom leap day to 1900-03-01.
		days++
		epoch = epoch1900Minus1
	default:
		epoch = epoch1900Minus1
	}
	return epoch.AddDate(0, 0, days).Add(time.Duration(ms) * time.Millisecond), true
}

// isoLayouts are tried first, in order.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
}

// namedLayouts are month-name forms; month names match case-insensitively.
var namedLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2-Jan-2006",
	"Mon, 2 Jan 2006",
	"Monday, January 2, 2006",
}

var timeSuffixes = []string{"", " 15:04", " 15:04:05"}

var numericDate = regexp.MustCompile(`^(\d{1,4})([/.\-])(\d{1,2})([/.\-])(\d{1,4})(?:[ T](\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)

// dateMatch is a parsed date string. ambiguous is set when day and month
// could be swapped and the month-first convention was applied.
type dateMatch struct {
	t         time.Time
	ambiguous bool
}

// parseDate parses a date string. dayFirst selects the day/month order for
// numeric dates that do not decide it themselves.
func parseDate(s string, dayFirst bool) (dateMatch, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateMatch{t: t}, true
		}
	}
	if m, ok := parseNumericDate(s, dayFirst); ok {
		return m, true
	}
	for _, layout := range namedLayouts {
		for _, suffix := range timeSuffixes {
			if t, err := time.Parse(layout+suffix, s); err == nil {
				return dateMatch{t: t}, true
			}
		}
	}
	return dateMatch{}, false
}

func parseNumericDate(s string, dayFirst bool) (dateMatch, bool) {
	m := numericDate.FindStringSubmatch(s)
	if m == nil || m[2] != m[4] {
		return dateMatch{}, false
	}
	a, b, c := m[1], m[3], m[5]
	sep := m[2]

	var year, month, day int
	ambiguous := false
	switch {
	case len(a) == 4:
		year, month, day = atoi(a), atoi(b), atoi(c)
	case len(c) == 4 || len(c) == 2:
		if len(a) > 2 {
			return dateMatch{}, false
		}
		year = expandYear(c)
		first, second := atoi(a), atoi(b)
		switch {
		case first > 12 && second > 12:
			return dateMatch{}, false
		case first > 12:
			day, month = first, second
		case second > 12:
			month, day = first, second
		case dayFirst || sep == ".":
			day, month = first, second
		default:
			month, day = first, second
			ambiguous = first != second
		}
	default:
		return dateMatch{}, false
	}

	hour, minute, second := 0, 0, 0
	if m[6] != "" {
		hour, minute = atoi(m[6]), atoi(m[7])
		if m[8] != "" {
			second = atoi(m[8])
		}
	}
	t, ok := makeDate(year, month, day, hour, minute, second)
	if !ok {
		return dateMatch{}, false
	}
	return dateMatch{t: t, ambiguous: ambiguous}, true
}

// expandYear maps two-digit years 00-29 to 20xx and 30-99 to 19xx.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) != 2 {
		return y
	}
	if y < 30 {
		return 2000 + y
	}
	return 1900 + y
}

// makeDate builds a date and rejects components time.Date would normalize.
func makeDate(year, month, day, hour, minute, second int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

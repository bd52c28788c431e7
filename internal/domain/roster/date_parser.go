package roster

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DateField names one of the tenure date columns of a roster row.
type DateField string

const (
	FieldJoinDate     DateField = "join_date"
	FieldInactiveDate DateField = "inactive_date"
	FieldLeaveDate    DateField = "leave_date"
)

// UnknownRawDate marks a join or leave cell that was present but empty.
const UnknownRawDate = "unknown"

// DateKind tells how much a parsed date can be trusted.
type DateKind int

const (
	DateAbsent DateKind = iota
	DateClean
	DateApproximated
	DateUnknown
)

// DateValue is the outcome of parsing one scraped date cell.
type DateValue struct {
	Kind DateKind
	Date time.Time
	Raw  string
}

// Parsed returns the date when one could be recovered.
func (v DateValue) Parsed() *time.Time {
	if v.Kind != DateClean && v.Kind != DateApproximated {
		return nil
	}
	d := v.Date
	return &d
}

// RawText is the original cell text worth keeping for human inspection.
func (v DateValue) RawText() string {
	if v.Kind == DateApproximated || v.Kind == DateUnknown {
		return v.Raw
	}
	return ""
}

// Apply stores the value into the matching date and raw fields of p.
func (v DateValue) Apply(field DateField, p *Player) {
	switch field {
	case FieldJoinDate:
		p.JoinDate, p.JoinDateRaw = v.Parsed(), v.RawText()
	case FieldInactiveDate:
		p.InactiveDate, p.InactiveDateRaw = v.Parsed(), v.RawText()
	case FieldLeaveDate:
		p.LeaveDate, p.LeaveDateRaw = v.Parsed(), v.RawText()
	}
}

// NormalizeDateField maps a cell label such as "Leave Date:" to a DateField.
func NormalizeDateField(label string) (DateField, bool) {
	name := strings.ToLower(strings.TrimSpace(label))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, ":", "")
	switch DateField(name) {
	case FieldJoinDate, FieldInactiveDate, FieldLeaveDate:
		return DateField(name), true
	default:
		return "", false
	}
}

// ParseDateField parses a scraped date cell on a best-effort basis.
//
// Incomplete dates are repaired so that join dates round down to the start of
// the known period and leave or inactive dates round up to its end. It never
// fails: an unrecognised label returns ok == false and anything unparseable is
// reported as DateUnknown with the original text.
func ParseDateField(label, text string) (DateField, DateValue, bool) {
	field, ok := NormalizeDateField(label)
	if !ok {
		return "", DateValue{}, false
	}

	raw := strings.TrimSpace(text)
	head := strings.ToLower(truncateRunes(raw, 10))

	if d, ok := parseISODate(head); ok {
		return field, DateValue{Kind: DateClean, Date: d}, true
	}

	roundUp := field != FieldJoinDate
	if repaired, ok := repairDate(head, roundUp); ok {
		if d, ok := parseISODate(repaired); ok {
			return field, DateValue{Kind: DateApproximated, Date: d, Raw: raw}, true
		}
	}

	if raw == "" {
		if field == FieldJoinDate || field == FieldLeaveDate {
			return field, DateValue{Kind: DateUnknown, Raw: UnknownRawDate}, true
		}
		return field, DateValue{Kind: DateAbsent}, true
	}

	return field, DateValue{Kind: DateUnknown, Raw: raw}, true
}

func parseISODate(value string) (time.Time, bool) {
	if len(value) != len(time.DateOnly) {
		return time.Time{}, false
	}
	d, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// repairDate turns values like "2015-??-??" or "2013-04-?" into a full
// YYYY-MM-DD string. It requires a four digit year prefix.
func repairDate(value string, roundUp bool) (string, bool) {
	if len(value) < 4 || !isDigits(value[:4]) {
		return "", false
	}

	if len(value) > 4 && (len(value) <= 5 || !isDigit(value[5])) {
		value = value[:4]
	}

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if isDigit(value[i]) || value[i] == '-' {
			b.WriteByte(value[i])
		}
	}
	value = strings.TrimRight(b.String(), "-")

	parts := strings.Split(value, "-")
	year := parts[0]
	if len(year) != 4 {
		return "", false
	}

	month := ""
	if len(parts) > 1 {
		month = parts[1]
	}
	if month == "" {
		if roundUp {
			month = "12"
		} else {
			month = "01"
		}
	}

	day := ""
	if len(parts) > 2 {
		day = parts[2]
	}
	if day == "" {
		day = "01"
		if roundUp {
			if last, ok := lastDayOfMonth(year, month); ok {
				day = last
			}
		}
	}

	return year + "-" + month + "-" + day, true
}

func lastDayOfMonth(year, month string) (string, bool) {
	first, err := time.Parse(time.DateOnly, year+"-"+month+"-01")
	if err != nil {
		return "", false
	}
	return first.AddDate(0, 1, -1).Format("02"), true
}

func truncateRunes(value string, n int) string {
	if utf8.RuneCountInString(value) <= n {
		return value
	}
	count := 0
	for i := range value {
		if count == n {
			return value[:i]
		}
		count++
	}
	return value
}

func isDigits(value string) bool {
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) {
			return false
		}
	}
	return value != ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

package daterange

import "time"

const secondsPerDay = 24 * 60 * 60

var (
	// MinDate is the earliest representable calendar date.
	MinDate = time.Time{}
	// MaxDate marks an open ("present") end.
	MaxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// DateRange is a half-open [Start, End) interval of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// New builds a range. A nil start becomes MinDate and a nil end becomes MaxDate.
func New(start, end *time.Time) DateRange {
	out := DateRange{Start: MinDate, End: MaxDate}
	if start != nil {
		out.Start = Day(*start)
	}
	if end != nil {
		out.End = Day(*end)
	}
	return out
}

// Never is the sentinel range used for records that have no temporal meaning.
func Never() DateRange {
	return DateRange{Start: MinDate, End: MinDate}
}

func (r DateRange) IsNever() bool {
	return r.Start.Equal(MinDate) && r.End.Equal(MinDate)
}

func (r DateRange) IsOngoing() bool {
	return r.End.Equal(MaxDate)
}

func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

func (r DateRange) HasOverlap(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Days is End-Start in whole days. Not meaningful for Never.
func (r DateRange) Days() int {
	return int((r.End.Unix() - r.Start.Unix()) / secondsPerDay)
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date is shorthand for a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// String renders the range for logs as "start..end", with "present" for an
// open end and "never" for the sentinel.
func (r DateRange) String() string {
	if r.IsNever() {
		return "never"
	}
	end := "present"
	if !r.IsOngoing() {
		end = r.End.Format(time.DateOnly)
	}
	return r.Start.Format(time.DateOnly) + ".." + end
}

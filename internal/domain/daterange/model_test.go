package daterange

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	start := Date(2020, time.January, 1)

	got := New(&start, nil)
	if !got.Start.Equal(start) {
		t.Fatalf("unexpected start: %s", got.Start)
	}
	if !got.IsOngoing() {
		t.Fatalf("expected open end, got %s", got.End)
	}

	empty := New(nil, nil)
	if !empty.Start.Equal(MinDate) || !empty.End.Equal(MaxDate) {
		t.Fatalf("unexpected bounds: %+v", empty)
	}
}

func TestNew_TruncatesToDay(t *testing.T) {
	start := time.Date(2021, time.March, 4, 17, 30, 0, 0, time.FixedZone("x", 3600))
	got := New(&start, nil)
	if !got.Start.Equal(Date(2021, time.March, 4)) {
		t.Fatalf("unexpected start: %s", got.Start)
	}
}

func TestNever(t *testing.T) {
	if !Never().IsNever() {
		t.Fatalf("expected Never() to be never")
	}
	start := Date(2020, time.January, 1)
	if New(&start, nil).IsNever() {
		t.Fatalf("regular range must not be never")
	}
	if !Never().Equal(Never()) {
		t.Fatalf("expected sentinel equality")
	}
}

func TestHasOverlap(t *testing.T) {
	d := func(m time.Month, day int) *time.Time {
		v := Date(2020, m, day)
		return &v
	}

	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{name: "disjoint", a: New(d(1, 1), d(2, 1)), b: New(d(3, 1), d(4, 1)), want: false},
		{name: "touching", a: New(d(1, 1), d(2, 1)), b: New(d(2, 1), d(3, 1)), want: false},
		{name: "partial", a: New(d(1, 1), d(2, 15)), b: New(d(2, 1), d(3, 1)), want: true},
		{name: "contained", a: New(d(1, 1), d(12, 1)), b: New(d(2, 1), d(3, 1)), want: true},
		{name: "open ended", a: New(d(1, 1), nil), b: New(d(6, 1), d(7, 1)), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.HasOverlap(tt.b); got != tt.want {
				t.Fatalf("HasOverlap=%v want=%v", got, tt.want)
			}
			if got := tt.b.HasOverlap(tt.a); got != tt.want {
				t.Fatalf("HasOverlap not symmetric: %v want=%v", got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	start := Date(2020, time.January, 1)
	end := Date(2020, time.December, 31)
	if got := New(&start, &end).Days(); got != 365 {
		t.Fatalf("unexpected days: %d", got)
	}

	if got := New(&start, nil).Days(); got <= 365*7000 {
		t.Fatalf("expected very long open range, got %d", got)
	}
}

func TestString(t *testing.T) {
	join := Date(2016, time.January, 19)
	leave := Date(2020, time.April, 30)

	if got := New(&join, &leave).String(); got != "2016-01-19..2020-04-30" {
		t.Fatalf("unexpected closed range: %q", got)
	}
	if got := New(&join, nil).String(); got != "2016-01-19..present" {
		t.Fatalf("unexpected open range: %q", got)
	}
	if got := Never().String(); got != "never" {
		t.Fatalf("unexpected sentinel: %q", got)
	}
}

package leave

import (
	"testing"
	"time"
)

func TestDaySpan(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}

	cases := []struct {
		start string
		end   string
		want  int
	}{
		{"2024-03-01", "2024-03-01", 1},
		{"2024-03-01", "2024-03-05", 5},
		{"2024-02-28", "2024-03-01", 3}, // leap year
		{"2024-12-30", "2025-01-02", 4},
	}
	for _, c := range cases {
		got := DaySpan(day(c.start), day(c.end))
		if got != c.want {
			t.Errorf("DaySpan(%s, %s) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestDaySpanIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)

	if got := DaySpan(start, end); got != 2 {
		t.Errorf("DaySpan across midnight = %d, want 2", got)
	}
}

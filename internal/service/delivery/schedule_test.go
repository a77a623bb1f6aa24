package delivery

import (
	"testing"
	"time"
)

func TestWeeklyDue(t *testing.T) {
	// 2026-08-24 is a Monday.
	base := time.Date(2026, time.August, 24, 7, 30, 0, 0, time.UTC)

	for d := 0; d < 7; d++ {
		day := base.AddDate(0, 0, d)
		want := d == 0
		if got := WeeklyDue(day); got != want {
			t.Errorf("WeeklyDue(%s) = %v, want %v", day.Weekday(), got, want)
		}
	}
}

func TestGreetingName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first token of full name", "Alice Smith", "Alice"},
		{"single name", "Bob", "Bob"},
		{"leading whitespace", "  Carol Jones", "Carol"},
		{"empty name", "", "there"},
		{"whitespace only", "   ", "there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := greetingName(tt.in); got != tt.want {
				t.Errorf("greetingName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

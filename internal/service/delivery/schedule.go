package delivery

import "time"

// WeeklyDue reports whether the weekly tier dispatches on the given day.
// Weekly quotes go out only on Mondays, the first day of the week; a run on
// any other day skips the tier entirely, with no catch-up for missed weeks.
func WeeklyDue(t time.Time) bool {
	return t.Weekday() == time.Monday
}

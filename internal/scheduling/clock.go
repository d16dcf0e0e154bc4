package scheduling

import "time"

// Clock is the time source used by session resolution.  Injecting it keeps
// "which session is happening now" deterministic in tests.
type Clock func() time.Time

// PackClock converts an instant into the (day, hhmm) pair used by schedule
// entries: ISO weekday 1 (Monday) through 7 (Sunday), and the hour and
// minute packed into one integer.
func PackClock(t time.Time) (day, hhmm int) {
	day = int(t.Weekday())
	if day == 0 { // time.Sunday is 0; schedules use ISO numbering
		day = 7
	}
	return day, t.Hour()*100 + t.Minute()
}

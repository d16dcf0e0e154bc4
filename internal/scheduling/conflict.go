// Package scheduling holds the interval rules shared by the schedule store
// and the presence orchestrator.  All times are packed HHMM integers
// (e.g. 1430 for 14:30) on a single ISO weekday; entries never cross
// midnight, so plain integer ordering is sufficient.
//
// Two different interval rules are used on purpose, matching the behavior of
// the services this platform talks to:
//
//   - creation-time conflict checks treat entries as half-open [start, end),
//     so a class ending at 1000 does not collide with one starting at 1000;
//   - point-in-time lookup treats entries as closed [start, end], so a
//     check-in at exactly the end minute still resolves the session.
package scheduling

import "github.com/fmhcampus/attendance-platform/internal/model"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  Touching intervals (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// FindConflict returns the first entry for the given room and day whose
// interval overlaps [start, end), or nil when the slot is free.  The caller
// is expected to pass entries already scoped to one institution; conflict
// checks never cross the tenant boundary.
func FindConflict(entries []model.SessionEntry, roomID string, day, start, end int) *model.SessionEntry {
	for i := range entries {
		e := &entries[i]
		if e.RoomID != roomID || e.Day != day {
			continue
		}
		if Overlaps(e.StartTime, e.EndTime, start, end) {
			return e
		}
	}
	return nil
}

// ActiveAt returns the entry for the given room whose closed interval
// [start, end] contains the instant (day, t), or nil when no session is
// running.  When the data somehow holds several simultaneously active
// entries (which creation-time conflict checking is meant to prevent) the
// first one in slice order wins.
func ActiveAt(entries []model.SessionEntry, roomID string, day, t int) *model.SessionEntry {
	for i := range entries {
		e := &entries[i]
		if e.RoomID == roomID && e.Day == day && e.StartTime <= t && t <= e.EndTime {
			return e
		}
	}
	return nil
}

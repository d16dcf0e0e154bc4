// Package repository defines error types that are reused across
// repositories. These values allow higher layers such as handlers to
// distinguish between different failure scenarios without inspecting SQL
// errors: a schedule conflict maps to HTTP 409, a missing row to 404.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row scoped to the
// caller's institution. Handlers should translate this into an HTTP 404
// response.
var ErrNotFound = errors.New("not found")

// ConflictError is returned when a proposed session entry overlaps an
// existing one for the same institution, room and weekday. It names the
// class already holding the slot so the caller can report which booking
// collided. Handlers should translate this into an HTTP 409 response.
type ConflictError struct {
	RoomName  string // room being double-booked
	Day       int    // ISO weekday of the collision
	StartTime int    // proposed start, packed HHMM
	EndTime   int    // proposed end, packed HHMM
	ClassName string // class already occupying the slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is already booked by %s on day %d between %d-%d",
		e.RoomName, e.ClassName, e.Day, e.StartTime, e.EndTime)
}

package model

import "time"

// SessionEntry mirrors the 'schedules' table.  It places one class in one
// room on a weekday between two packed clock values.  Room and class names
// are snapshotted at creation time so historical schedules (and the
// attendance records derived from them) survive later renames.
//
// Fields:
//  ID            – primary key identifier.
//  InstitutionID – owning institution (tenant boundary).
//  RoomID        – room identifier as known by the room registry.
//  RoomName      – room name copied at creation time.
//  ClassID       – class identifier as known by the roster service.
//  ClassName     – class name copied at creation time.
//  Day           – ISO weekday, 1 (Monday) through 7 (Sunday).
//  StartTime     – packed HHMM integer, e.g. 1430 for 14:30.
//  EndTime       – packed HHMM integer; always on the same day as StartTime.
//  CreatedAt     – creation timestamp.
type SessionEntry struct {
	ID            uint64    // schedules.id
	InstitutionID string    // schedules.institution_id
	RoomID        string    // schedules.room_id
	RoomName      string    // schedules.room_name
	ClassID       string    // schedules.class_id
	ClassName     string    // schedules.class_name
	Day           int       // schedules.day
	StartTime     int       // schedules.start_time
	EndTime       int       // schedules.end_time
	CreatedAt     time.Time // schedules.created_at
}

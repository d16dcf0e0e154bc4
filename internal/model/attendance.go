package model

import "time"

// AttendanceRecord mirrors the 'attendances' table.  One row is appended per
// successful presence submission; rows are never updated or deleted.  There
// is deliberately no uniqueness constraint across repeated check-ins for the
// same session.  ClassName and RoomName are copied from the resolved
// SessionEntry so the ledger stays readable even if the session is later
// removed.
//
// Fields:
//  ID              – UUID primary key.
//  InstitutionID   – owning institution.
//  ClassAttendeeID – membership identifier returned by the roster service.
//  ScheduleID      – session the attendee was present for.
//  ClassName       – class name snapshot from the session entry.
//  RoomName        – room name snapshot from the session entry.
//  PresentTime     – commit timestamp.
type AttendanceRecord struct {
	ID              string    // attendances.id
	InstitutionID   string    // attendances.institution_id
	ClassAttendeeID string    // attendances.class_attendee_id
	ScheduleID      uint64    // attendances.schedule_id
	ClassName       string    // attendances.class_name
	RoomName        string    // attendances.room_name
	PresentTime     time.Time // attendances.present_time
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// PresenceRecordedEvent is published after an attendance record is committed.
// It carries enough context for downstream consumers (notification, exports,
// analytics) to act without querying the ledger database.
type PresenceRecordedEvent struct {
	AttendanceID  string `json:"attendance_id"`
	InstitutionID string `json:"institution_id"`
	ScheduleID    uint64 `json:"schedule_id"`
	ClassName     string `json:"class_name"`
	RoomName      string `json:"room_name"`
	StudentName   string `json:"student_name"`
	AttendeeCode  string `json:"attendee_code"`
	RecordedAt    string `json:"recorded_at"`
}

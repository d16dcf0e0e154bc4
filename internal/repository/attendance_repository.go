package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fmhcampus/attendance-platform/internal/model"
)

// AttendanceRepo is the append-only ledger of committed presence events.
// Rows are inserted by the orchestrator's final stage and never touched
// again.  Repeated check-ins for the same session append further rows; the
// table deliberately carries no uniqueness constraint across them.
type AttendanceRepo struct{ DB *sql.DB }

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo { return &AttendanceRepo{DB: db} }

// Insert appends one record.  A UUID id is assigned when the caller left it
// empty, and written back to rec so the caller can reference the new row.
func (r *AttendanceRepo) Insert(ctx context.Context, rec *model.AttendanceRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	const q = `INSERT INTO attendances
	           (id, institution_id, class_attendee_id, schedule_id, class_name, room_name, present_time)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, q,
		rec.ID, rec.InstitutionID, rec.ClassAttendeeID, rec.ScheduleID,
		rec.ClassName, rec.RoomName, rec.PresentTime)
	return err
}

// ListByInstitution returns the institution's records, most recent first.
func (r *AttendanceRepo) ListByInstitution(ctx context.Context, institutionID string) ([]model.AttendanceRecord, error) {
	const q = `SELECT id, institution_id, class_attendee_id, schedule_id, class_name, room_name, present_time
	           FROM attendances
	           WHERE institution_id = ?
	           ORDER BY present_time DESC, id ASC`
	rows, err := r.DB.QueryContext(ctx, q, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.InstitutionID, &rec.ClassAttendeeID,
			&rec.ScheduleID, &rec.ClassName, &rec.RoomName, &rec.PresentTime); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

package repository

import (
	"context"
	"database/sql"

	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/scheduling"
)

// ScheduleRepo persists session entries.  Entries are immutable after
// creation; only out-of-scope administrative tooling removes them.
type ScheduleRepo struct{ DB *sql.DB }

func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{DB: db} }

const scheduleCols = "id, institution_id, room_id, room_name, class_id, class_name, day, start_time, end_time, created_at"

// Create inserts a session entry after verifying that its interval does not
// overlap any existing entry for the same institution, room and weekday.
// The overlap check and the insert run inside one transaction, with the
// candidate slice locked via SELECT ... FOR UPDATE, so two concurrent
// creations of overlapping entries cannot both commit: one inserts, the
// other observes the fresh row and gets a *ConflictError.
func (r *ScheduleRepo) Create(ctx context.Context, e *model.SessionEntry) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	// Lock every entry occupying the same room/day slice for this
	// institution.  Gap locking on this index range also blocks a second
	// writer from inserting into the slice until we commit.
	const sel = `SELECT ` + scheduleCols + ` FROM schedules
	             WHERE institution_id = ? AND room_id = ? AND day = ?
	             FOR UPDATE`
	rows, err := tx.QueryContext(ctx, sel, e.InstitutionID, e.RoomID, e.Day)
	if err != nil {
		return 0, err
	}
	existing, err := scanEntries(rows)
	if err != nil {
		return 0, err
	}

	if c := scheduling.FindConflict(existing, e.RoomID, e.Day, e.StartTime, e.EndTime); c != nil {
		return 0, &ConflictError{
			RoomName:  e.RoomName,
			Day:       e.Day,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
			ClassName: c.ClassName,
		}
	}

	const ins = `INSERT INTO schedules
	             (institution_id, room_id, room_name, class_id, class_name, day, start_time, end_time)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		e.InstitutionID, e.RoomID, e.RoomName, e.ClassID, e.ClassName, e.Day, e.StartTime, e.EndTime)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByInstitution returns every entry owned by the institution, in id
// order so the listing (and anything that iterates it) is stable.
func (r *ScheduleRepo) ListByInstitution(ctx context.Context, institutionID string) ([]model.SessionEntry, error) {
	const q = `SELECT ` + scheduleCols + ` FROM schedules
	           WHERE institution_id = ?
	           ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, q, institutionID)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// FindConflict reports the entry colliding with the proposed slot, or nil
// when the slot is free.  This is the read-only form used by the
// availability endpoint; Create repeats the check under lock before
// inserting.
func (r *ScheduleRepo) FindConflict(ctx context.Context, institutionID, roomID string, day, start, end int) (*model.SessionEntry, error) {
	const q = `SELECT ` + scheduleCols + ` FROM schedules
	           WHERE institution_id = ? AND room_id = ? AND day = ?
	             AND start_time < ? AND end_time > ?
	           ORDER BY id ASC
	           LIMIT 1`
	rows, err := r.DB.QueryContext(ctx, q, institutionID, roomID, day, end, start)
	if err != nil {
		return nil, err
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func scanEntries(rows *sql.Rows) ([]model.SessionEntry, error) {
	defer rows.Close()
	var out []model.SessionEntry
	for rows.Next() {
		var e model.SessionEntry
		if err := rows.Scan(&e.ID, &e.InstitutionID, &e.RoomID, &e.RoomName,
			&e.ClassID, &e.ClassName, &e.Day, &e.StartTime, &e.EndTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

package orchestrator

import (
	"context"
	"log"
	"time"

	"github.com/fmhcampus/attendance-platform/internal/client"
	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/queue"
	"github.com/fmhcampus/attendance-platform/internal/scheduling"
	"github.com/fmhcampus/attendance-platform/internal/utils"
)

// SecretVerifier checks a claimed attendee secret against the person
// directory.  Implemented by *client.DirectoryClient.
type SecretVerifier interface {
	ValidateSecret(ctx context.Context, token, code, secret string) (client.SecretResult, error)
}

// ScheduleLister fetches the institution's schedule entries.  Implemented by
// *client.ScheduleClient.
type ScheduleLister interface {
	List(ctx context.Context, token string) ([]model.SessionEntry, error)
}

// EnrollmentChecker confirms class membership against the roster service.
// Implemented by *client.RosterClient.
type EnrollmentChecker interface {
	ValidateAttendee(ctx context.Context, token, classID, attendeeCode string) (client.EnrollmentResult, error)
}

// Ledger appends committed attendance records.  Implemented by
// *repository.AttendanceRepo.
type Ledger interface {
	Insert(ctx context.Context, rec *model.AttendanceRecord) error
}

// Publisher emits a domain event after a record is committed.  Publishing is
// best effort; failures are logged and never surfaced to the device.
type Publisher func(ctx context.Context, event queue.PresenceRecordedEvent) error

// Orchestrator drives the presence verification pipeline.  Each run is
// independent and holds no state between requests; the struct only bundles
// the collaborators and is safe for concurrent use.
type Orchestrator struct {
	SigningSecret string            // shared credential-signing secret, used for elevation
	Directory     SecretVerifier    // person directory
	Schedules     ScheduleLister    // schedule store
	Roster        EnrollmentChecker // class roster
	Ledger        Ledger            // attendance ledger
	Clock         scheduling.Clock  // time source for "happening now"; nil means time.Now
	Publish       Publisher         // optional event publisher
}

// Request is a presence submission from a check-in device.
type Request struct {
	RoomID         string
	AttendeeCode   string
	AttendeeSecret string
}

// Result is returned when every stage succeeded and the record is committed.
type Result struct {
	StudentName string
	ClassName   string
}

// SubmitPresence runs the pipeline for an already-authenticated caller.  The
// stages are strictly ordered and fail fast: a rejection or an unavailable
// dependency stops the run before any later network call, and nothing is
// written unless all three remote checks succeed.  Earlier stages are pure
// reads, so a failed run leaves no partial state behind.
//
// Errors are one of *ValidationError (business rejection, carries the
// stage), *client.UnavailableError (dependency down, retryable), or an
// internal error from the ledger write.
func (o *Orchestrator) SubmitPresence(ctx context.Context, institutionID string, req Request) (Result, error) {
	// Elevate: downstream services only accept admin-role credentials, so
	// mint one for this institution and use it for every call below.  The
	// device's own service-agent credential never leaves this service.
	token, err := utils.ElevateCredential(o.SigningSecret, institutionID)
	if err != nil {
		return Result{}, err
	}

	// Verify secret against the person directory.
	secret, err := o.Directory.ValidateSecret(ctx, token, req.AttendeeCode, req.AttendeeSecret)
	if err != nil {
		return Result{}, err
	}
	if !secret.Valid {
		return Result{}, rejected(StageAttendee, "invalid attendee secret or code")
	}

	// Resolve the session happening now in the requested room.  The store
	// is fetched in full and filtered locally: the schedule service's
	// availability endpoint answers "would this slot conflict", not "what
	// is running at this instant".
	entries, err := o.Schedules.List(ctx, token)
	if err != nil {
		return Result{}, err
	}
	now := o.now()
	day, hhmm := scheduling.PackClock(now)
	active := scheduling.ActiveAt(entries, req.RoomID, day, hhmm)
	if active == nil {
		return Result{}, rejected(StageNoActiveSession, "no class scheduled in this room right now")
	}

	// Confirm enrollment in the resolved session's class.
	enrollment, err := o.Roster.ValidateAttendee(ctx, token, active.ClassID, req.AttendeeCode)
	if err != nil {
		return Result{}, err
	}
	if !enrollment.Valid {
		return Result{}, rejected(StageNotEnrolled, "attendee is not enrolled in this class")
	}

	// Commit exactly one record, carrying the name snapshots from the
	// session entry rather than live lookups.
	rec := &model.AttendanceRecord{
		InstitutionID:   institutionID,
		ClassAttendeeID: enrollment.ClassAttendeeID,
		ScheduleID:      active.ID,
		ClassName:       active.ClassName,
		RoomName:        active.RoomName,
		PresentTime:     now.UTC(),
	}
	if err := o.Ledger.Insert(ctx, rec); err != nil {
		return Result{}, err
	}

	if o.Publish != nil {
		event := queue.PresenceRecordedEvent{
			AttendanceID:  rec.ID,
			InstitutionID: institutionID,
			ScheduleID:    active.ID,
			ClassName:     active.ClassName,
			RoomName:      active.RoomName,
			StudentName:   secret.Name,
			AttendeeCode:  req.AttendeeCode,
			RecordedAt:    rec.PresentTime.Format(time.RFC3339),
		}
		if err := o.Publish(ctx, event); err != nil {
			log.Printf("presence: publish event failed: %v", err)
		}
	}

	return Result{StudentName: secret.Name, ClassName: active.ClassName}, nil
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

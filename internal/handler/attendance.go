package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fmhcampus/attendance-platform/internal/client"
	"github.com/fmhcampus/attendance-platform/internal/middleware"
	"github.com/fmhcampus/attendance-platform/internal/orchestrator"
	"github.com/fmhcampus/attendance-platform/internal/repository"
)

// AttendanceHandler exposes the presence pipeline and the ledger listing.
type AttendanceHandler struct {
	Orchestrator *orchestrator.Orchestrator
	Ledger       *repository.AttendanceRepo
}

func NewAttendanceHandler(o *orchestrator.Orchestrator, ledger *repository.AttendanceRepo) *AttendanceHandler {
	return &AttendanceHandler{Orchestrator: o, Ledger: ledger}
}

// ----- DTOs -----

type presenceReq struct {
	RoomID         string `json:"room_id"`
	AttendeeCode   string `json:"attendee_code"`
	AttendeeSecret string `json:"attendee_secret"`
}

type presenceResp struct {
	Message     string `json:"message"`
	StudentName string `json:"student_name"`
	ClassName   string `json:"class_name"`
}

type attendanceItem struct {
	ID              string    `json:"id"`
	ClassAttendeeID string    `json:"class_attendee_id"`
	ScheduleID      uint64    `json:"schedule_id"`
	ClassName       string    `json:"class_name"`
	RoomName        string    `json:"room_name"`
	PresentTime     time.Time `json:"present_time"`
}

// SubmitPresence accepts a presence submission from a check-in device and
// runs the verification pipeline.  The caller is already authenticated as
// service-agent or admin; everything else is the orchestrator's job.  The
// response distinguishes business rejections (400, with the rejecting
// stage) from unavailable dependencies (503, safe to retry later).
func (h *AttendanceHandler) SubmitPresence(c echo.Context) error {
	var req presenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomID = strings.TrimSpace(req.RoomID)
	req.AttendeeCode = strings.TrimSpace(req.AttendeeCode)
	if req.RoomID == "" || req.AttendeeCode == "" || req.AttendeeSecret == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id/attendee_code/attendee_secret required"})
	}

	res, err := h.Orchestrator.SubmitPresence(c.Request().Context(), middleware.InstitutionID(c), orchestrator.Request{
		RoomID:         req.RoomID,
		AttendeeCode:   req.AttendeeCode,
		AttendeeSecret: req.AttendeeSecret,
	})
	if err != nil {
		var vErr *orchestrator.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Message, "stage": vErr.Stage})
		}
		var uErr *client.UnavailableError
		if errors.As(err, &uErr) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": unavailableMessage(uErr.Service)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record attendance failed"})
	}

	return c.JSON(http.StatusOK, presenceResp{
		Message:     "successful",
		StudentName: res.StudentName,
		ClassName:   res.ClassName,
	})
}

// List returns the institution's ledger, most recent first. Admin only.
func (h *AttendanceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	records, err := h.Ledger.ListByInstitution(ctx, middleware.InstitutionID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := make([]attendanceItem, 0, len(records))
	for _, r := range records {
		items = append(items, attendanceItem{
			ID:              r.ID,
			ClassAttendeeID: r.ClassAttendeeID,
			ScheduleID:      r.ScheduleID,
			ClassName:       r.ClassName,
			RoomName:        r.RoomName,
			PresentTime:     r.PresentTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"attendances": items})
}

// unavailableMessage keeps the caller-facing wording stable per dependency.
func unavailableMessage(service string) string {
	switch service {
	case "attendee":
		return "attendee validation failed"
	case "schedule":
		return "schedule validation failed"
	case "class":
		return "enrollment validation failed"
	case "room":
		return "room validation failed"
	}
	return "upstream service unavailable"
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fmhcampus/attendance-platform/internal/client"
	"github.com/fmhcampus/attendance-platform/internal/middleware"
	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/repository"
)

// ScheduleHandler exposes the schedule store: creation with conflict
// detection, full listing, and read-only availability validation.
type ScheduleHandler struct {
	Schedules *repository.ScheduleRepo
	Rooms     *client.RoomClient
	Roster    *client.RosterClient
}

func NewScheduleHandler(s *repository.ScheduleRepo, rooms *client.RoomClient, roster *client.RosterClient) *ScheduleHandler {
	return &ScheduleHandler{Schedules: s, Rooms: rooms, Roster: roster}
}

// ----- DTOs -----

type scheduleCreateItem struct {
	RoomID    string `json:"room_id"`
	ClassID   string `json:"class_id"`
	Day       int    `json:"day"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
}

type createSchedulesReq struct {
	Schedules []scheduleCreateItem `json:"schedules"`
}

type scheduleItem struct {
	ID        uint64 `json:"id"`
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	ClassID   string `json:"class_id"`
	ClassName string `json:"class_name"`
	Day       int    `json:"day"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
}

type availabilityItem struct {
	RoomID    string `json:"room_id"`
	Day       int    `json:"day"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
}

type validateAvailabilityReq struct {
	Schedules []availabilityItem `json:"schedules"`
}

type availabilityConflict struct {
	RoomID            string `json:"room_id"`
	ConflictWithClass string `json:"conflict_with_class"`
}

// validSlot checks the packed time encoding: ISO weekday and HHMM values on
// one day, end after start.
func validSlot(day, start, end int) bool {
	inClock := func(v int) bool { return v >= 0 && v <= 2359 && v%100 < 60 }
	return day >= 1 && day <= 7 && inClock(start) && inClock(end) && start < end
}

// Create inserts a batch of session entries.  For each entry the room and
// class ids are resolved against their owning services (snapshotting the
// names), then the conflict check and insert run atomically in the
// repository.  The first failure stops the batch; entries created before it
// remain, matching the one-by-one semantics devices rely on.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req createSchedulesReq
	if err := c.Bind(&req); err != nil || len(req.Schedules) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedules required"})
	}
	institutionID := middleware.InstitutionID(c)
	token, _ := c.Get(middleware.CtxRawCredential).(string)
	ctx := c.Request().Context()

	created := make([]uint64, 0, len(req.Schedules))
	for _, item := range req.Schedules {
		if !validSlot(item.Day, item.StartTime, item.EndTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day or time range"})
		}

		roomName, ok, err := h.Rooms.RoomName(ctx, token, item.RoomID)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": unavailableMessage("room")})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id: " + item.RoomID})
		}

		className, ok, err := h.Roster.ClassName(ctx, token, item.ClassID)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": unavailableMessage("class")})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class id: " + item.ClassID})
		}

		id, err := h.Schedules.Create(ctx, &model.SessionEntry{
			InstitutionID: institutionID,
			RoomID:        item.RoomID,
			RoomName:      roomName,
			ClassID:       item.ClassID,
			ClassName:     className,
			Day:           item.Day,
			StartTime:     item.StartTime,
			EndTime:       item.EndTime,
		})
		if err != nil {
			var cErr *repository.ConflictError
			if errors.As(err, &cErr) {
				return c.JSON(http.StatusConflict, echo.Map{
					"error":               cErr.Error(),
					"conflict_with_class": cErr.ClassName,
				})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
		}
		created = append(created, id)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "successful", "ids": created})
}

// List returns every schedule entry for the caller's institution.  The
// route sits behind the response cache middleware; keys are per
// institution.
func (h *ScheduleHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Schedules.ListByInstitution(ctx, middleware.InstitutionID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := make([]scheduleItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, scheduleItem{
			ID:        e.ID,
			RoomID:    e.RoomID,
			RoomName:  e.RoomName,
			ClassID:   e.ClassID,
			ClassName: e.ClassName,
			Day:       e.Day,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"schedules": items})
}

// ValidateAvailability answers, without inserting anything, whether each
// proposed slot would conflict with an existing entry.  Devices and admin
// tooling use it to pre-check bulk imports.
func (h *ScheduleHandler) ValidateAvailability(c echo.Context) error {
	var req validateAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	institutionID := middleware.InstitutionID(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	conflicts := make([]availabilityConflict, 0)
	for _, item := range req.Schedules {
		if !validSlot(item.Day, item.StartTime, item.EndTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day or time range"})
		}
		existing, err := h.Schedules.FindConflict(ctx, institutionID, item.RoomID, item.Day, item.StartTime, item.EndTime)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if existing != nil {
			conflicts = append(conflicts, availabilityConflict{
				RoomID:            item.RoomID,
				ConflictWithClass: existing.ClassName,
			})
		}
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusOK, echo.Map{"valid": false, "conflicts": conflicts})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "conflicts": conflicts})
}

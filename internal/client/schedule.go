package client

import (
	"context"
	"time"

	"github.com/fmhcampus/attendance-platform/internal/model"
)

// ScheduleClient reads the schedule store over HTTP.  The orchestrator uses
// it to fetch the institution's full schedule set when resolving the active
// session; it runs against the schedule service from this same repository,
// but crosses the network like any other dependency and fails the same way.
type ScheduleClient struct{ base }

// NewScheduleClient returns a client for the schedule service at baseURL.
func NewScheduleClient(baseURL string, timeout time.Duration) *ScheduleClient {
	return &ScheduleClient{base{service: "schedule", baseURL: baseURL, timeout: timeout}}
}

// scheduleItem is the wire form of one session entry.
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

type listSchedulesResp struct {
	Schedules []scheduleItem `json:"schedules"`
}

// List fetches every schedule entry visible to the credential's institution.
// The institution scope comes from the bearer token; there is no query
// parameter to widen it.
func (c *ScheduleClient) List(ctx context.Context, token string) ([]model.SessionEntry, error) {
	var out listSchedulesResp
	if err := c.doJSON(ctx, "GET", "/v1/schedules", token, nil, &out); err != nil {
		return nil, err
	}
	entries := make([]model.SessionEntry, 0, len(out.Schedules))
	for _, s := range out.Schedules {
		entries = append(entries, model.SessionEntry{
			ID:        s.ID,
			RoomID:    s.RoomID,
			RoomName:  s.RoomName,
			ClassID:   s.ClassID,
			ClassName: s.ClassName,
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	return entries, nil
}

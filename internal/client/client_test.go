package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmhcampus/attendance-platform/internal/client"
	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/testfixtures"
	"github.com/fmhcampus/attendance-platform/internal/utils"
)

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.IssueCredential(testfixtures.SigningSecret, "inst-1", model.RoleAdmin)
	require.NoError(t, err)
	return token
}

func TestDirectoryValidateSecret(t *testing.T) {
	dir := testfixtures.NewDirectory(t, map[string][2]string{
		"S-100": {"Mona Ortega", "hunter2"},
	})
	dc := client.NewDirectoryClient(dir.Server.URL, 2*time.Second)
	token := adminToken(t)

	res, err := dc.ValidateSecret(context.Background(), token, "S-100", "hunter2")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "Mona Ortega", res.Name)

	res, err = dc.ValidateSecret(context.Background(), token, "S-100", "wrong")
	require.NoError(t, err)
	assert.False(t, res.Valid)

	// Unknown code answers the same way as a wrong secret.
	res, err = dc.ValidateSecret(context.Background(), token, "S-999", "hunter2")
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestDirectoryRejectsNonAdminCredential(t *testing.T) {
	dir := testfixtures.NewDirectory(t, nil)
	dc := client.NewDirectoryClient(dir.Server.URL, 2*time.Second)

	agent, err := utils.IssueCredential(testfixtures.SigningSecret, "inst-1", model.RoleServiceAgent)
	require.NoError(t, err)

	_, err = dc.ValidateSecret(context.Background(), agent, "S-100", "hunter2")
	var unavailable *client.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "attendee", unavailable.Service)
}

func TestRosterValidateAttendee(t *testing.T) {
	ro := testfixtures.NewRoster(t,
		map[string]string{"C-1": "Algorithms"},
		map[string]map[string]string{"C-1": {"S-100": "M-55"}},
	)
	rc := client.NewRosterClient(ro.Server.URL, 2*time.Second)
	token := adminToken(t)

	res, err := rc.ValidateAttendee(context.Background(), token, "C-1", "S-100")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "M-55", res.ClassAttendeeID)
	assert.Equal(t, "Algorithms", res.ClassName)

	res, err = rc.ValidateAttendee(context.Background(), token, "C-1", "S-200")
	require.NoError(t, err)
	assert.False(t, res.Valid)
}

func TestRosterClassName(t *testing.T) {
	ro := testfixtures.NewRoster(t, map[string]string{"C-1": "Algorithms"}, nil)
	rc := client.NewRosterClient(ro.Server.URL, 2*time.Second)
	token := adminToken(t)

	name, ok, err := rc.ClassName(context.Background(), token, "C-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Algorithms", name)

	_, ok, err = rc.ClassName(context.Background(), token, "C-404")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoomName(t *testing.T) {
	rm := testfixtures.NewRooms(t, map[string]string{"R-1": "Lab West"})
	rc := client.NewRoomClient(rm.Server.URL, 2*time.Second)
	token := adminToken(t)

	name, ok, err := rc.RoomName(context.Background(), token, "R-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Lab West", name)

	_, ok, err = rc.RoomName(context.Background(), token, "R-404")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleList(t *testing.T) {
	ss := testfixtures.NewScheduleStore(t, []model.SessionEntry{
		{ID: 3, RoomID: "R-1", RoomName: "Lab West", ClassID: "C-1", ClassName: "Algorithms", Day: 2, StartTime: 900, EndTime: 1030},
	})
	sc := client.NewScheduleClient(ss.Server.URL, 2*time.Second)

	entries, err := sc.List(context.Background(), adminToken(t))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(3), entries[0].ID)
	assert.Equal(t, "Lab West", entries[0].RoomName)
	assert.Equal(t, 1030, entries[0].EndTime)
}

func TestServerErrorBecomesUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dc := client.NewDirectoryClient(srv.URL, 2*time.Second)
	_, err := dc.ValidateSecret(context.Background(), "tok", "S-100", "x")

	var unavailable *client.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "attendee", unavailable.Service)
}

func TestMalformedBodyBecomesUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	rc := client.NewRoomClient(srv.URL, 2*time.Second)
	_, _, err := rc.RoomName(context.Background(), "tok", "R-1")

	var unavailable *client.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "room", unavailable.Service)
}

func TestUnreachableServiceBecomesUnavailable(t *testing.T) {
	// Port from a server that is already closed, so nothing is listening.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sc := client.NewScheduleClient(srv.URL, 500*time.Millisecond)
	_, err := sc.List(context.Background(), "tok")

	var unavailable *client.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "schedule", unavailable.Service)
	assert.True(t, errors.Unwrap(unavailable) != nil)
}

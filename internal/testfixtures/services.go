// Package testfixtures provides in-process stand-ins for the external
// services this platform calls: the person directory, the class roster, the
// room registry and the schedule store.  Each stub speaks the real wire
// contract, enforces the admin-credential requirement the real services
// enforce, and is backed by plain maps so tests can state their world
// up front.
package testfixtures

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/utils"
)

// SigningSecret is the credential-signing secret shared by all stubs and the
// code under test.
const SigningSecret = "test-signing-secret"

// Person is one directory record as the stub stores it.  The secret is
// bcrypt-hashed at setup, mirroring the directory's stored-hash contract.
type Person struct {
	Name       string
	secretHash []byte
}

// Directory is an in-memory person directory behind a real HTTP listener.
type Directory struct {
	Server  *httptest.Server
	people  map[string]Person // keyed by attendee code
	// Calls counts validate-secret requests, for ordering assertions.
	Calls int
}

// NewDirectory starts a directory stub holding the given code->(name,secret)
// records.
func NewDirectory(t *testing.T, people map[string][2]string) *Directory {
	t.Helper()
	d := &Directory{people: make(map[string]Person, len(people))}
	for code, ns := range people {
		hash, err := bcrypt.GenerateFromPassword([]byte(ns[1]), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash secret: %v", err)
		}
		d.people[code] = Person{Name: ns[0], secretHash: hash}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/attendees/validate-secret", func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		var req struct {
			Code   string `json:"code"`
			Secret string `json:"secret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		d.Calls++
		p, ok := d.people[req.Code]
		if !ok || bcrypt.CompareHashAndPassword(p.secretHash, []byte(req.Secret)) != nil {
			writeJSON(w, map[string]any{"valid": false})
			return
		}
		writeJSON(w, map[string]any{"valid": true, "code": req.Code, "name": p.Name})
	})
	d.Server = httptest.NewServer(mux)
	t.Cleanup(d.Server.Close)
	return d
}

// Roster is an in-memory class roster behind a real HTTP listener.
// Enrollments maps class id -> attendee code -> membership id.
type Roster struct {
	Server      *httptest.Server
	ClassNames  map[string]string
	Enrollments map[string]map[string]string
	Calls       int
}

// NewRoster starts a roster stub with the given classes and memberships.
func NewRoster(t *testing.T, classNames map[string]string, enrollments map[string]map[string]string) *Roster {
	t.Helper()
	ro := &Roster{ClassNames: classNames, Enrollments: enrollments}
	mux := http.NewServeMux()
	mux.HandleFunc("/classes/validate-attendee", func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		var req struct {
			ClassID      string `json:"class_id"`
			AttendeeCode string `json:"attendee_code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ro.Calls++
		memberID, ok := ro.Enrollments[req.ClassID][req.AttendeeCode]
		if !ok {
			writeJSON(w, map[string]any{"valid": false})
			return
		}
		writeJSON(w, map[string]any{
			"valid":             true,
			"class_attendee_id": memberID,
			"class_name":        ro.ClassNames[req.ClassID],
		})
	})
	mux.HandleFunc("/classes/validate-existence", func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		var req struct {
			Classes []struct {
				ID string `json:"id"`
			} `json:"classes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Classes) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		name, ok := ro.ClassNames[req.Classes[0].ID]
		if !ok {
			writeJSON(w, map[string]any{"valid": false})
			return
		}
		writeJSON(w, map[string]any{
			"valid":   true,
			"classes": []map[string]string{{"id": req.Classes[0].ID, "name": name}},
		})
	})
	ro.Server = httptest.NewServer(mux)
	t.Cleanup(ro.Server.Close)
	return ro
}

// Rooms is an in-memory room registry behind a real HTTP listener.
type Rooms struct {
	Server *httptest.Server
	Names  map[string]string
}

// NewRooms starts a room registry stub holding id->name pairs.
func NewRooms(t *testing.T, names map[string]string) *Rooms {
	t.Helper()
	rm := &Rooms{Names: names}
	mux := http.NewServeMux()
	mux.HandleFunc("/rooms/validate-existence", func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		var req struct {
			Rooms []struct {
				ID string `json:"id"`
			} `json:"rooms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Rooms) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		name, ok := rm.Names[req.Rooms[0].ID]
		if !ok {
			writeJSON(w, map[string]any{"valid": false})
			return
		}
		writeJSON(w, map[string]any{
			"valid": true,
			"rooms": []map[string]string{{"id": req.Rooms[0].ID, "name": name}},
		})
	})
	rm.Server = httptest.NewServer(mux)
	t.Cleanup(rm.Server.Close)
	return rm
}

// ScheduleStore is a read-only schedule service stub serving a fixed entry
// set.
type ScheduleStore struct {
	Server  *httptest.Server
	Entries []model.SessionEntry
	Calls   int
}

// NewScheduleStore starts a schedule service stub listing the given entries.
func NewScheduleStore(t *testing.T, entries []model.SessionEntry) *ScheduleStore {
	t.Helper()
	ss := &ScheduleStore{Entries: entries}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/schedules", func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		ss.Calls++
		items := make([]map[string]any, 0, len(ss.Entries))
		for _, e := range ss.Entries {
			items = append(items, map[string]any{
				"id": e.ID, "room_id": e.RoomID, "room_name": e.RoomName,
				"class_id": e.ClassID, "class_name": e.ClassName,
				"day": e.Day, "start_time": e.StartTime, "end_time": e.EndTime,
			})
		}
		writeJSON(w, map[string]any{"schedules": items})
	})
	ss.Server = httptest.NewServer(mux)
	t.Cleanup(ss.Server.Close)
	return ss
}

// requireAdmin rejects requests whose bearer credential is missing, invalid
// or not admin-role, exactly like the real services do.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	claims, err := utils.VerifyCredential(SigningSecret, strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	if claims.Role != model.RoleAdmin {
		w.WriteHeader(http.StatusForbidden)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

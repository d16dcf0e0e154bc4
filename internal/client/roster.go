package client

import (
	"context"
	"time"
)

// RosterClient talks to the class roster service, which owns class
// definitions and class membership links.
type RosterClient struct{ base }

// NewRosterClient returns a client for the class service at baseURL.
func NewRosterClient(baseURL string, timeout time.Duration) *RosterClient {
	return &RosterClient{base{service: "class", baseURL: baseURL, timeout: timeout}}
}

// EnrollmentResult is the roster's answer to an enrollment check.  The
// membership identifier is the foreign key attendance records point at.
type EnrollmentResult struct {
	Valid           bool   `json:"valid"`
	ClassAttendeeID string `json:"class_attendee_id,omitempty"`
	ClassName       string `json:"class_name,omitempty"`
}

type validateAttendeeReq struct {
	ClassID      string `json:"class_id"`
	AttendeeCode string `json:"attendee_code"`
}

// ValidateAttendee asks the roster whether the attendee code is enrolled in
// the class and, when it is, which membership link proves it.
func (c *RosterClient) ValidateAttendee(ctx context.Context, token, classID, attendeeCode string) (EnrollmentResult, error) {
	var out EnrollmentResult
	err := c.doJSON(ctx, "POST", "/classes/validate-attendee", token,
		validateAttendeeReq{ClassID: classID, AttendeeCode: attendeeCode}, &out)
	return out, err
}

// existenceItem is one entry of the batch existence contract shared by the
// roster and room services: {valid, <plural>:[{id,name}]}.
type existenceItem struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type classExistenceReq struct {
	Classes []existenceItem `json:"classes"`
}

type classExistenceResp struct {
	Valid   bool            `json:"valid"`
	Classes []existenceItem `json:"classes,omitempty"`
}

// ClassName resolves a class id to its current display name.  It returns
// ok=false when the roster does not know the id for this institution.  The
// schedule store snapshots the returned name onto new session entries.
func (c *RosterClient) ClassName(ctx context.Context, token, classID string) (name string, ok bool, err error) {
	var out classExistenceResp
	err = c.doJSON(ctx, "POST", "/classes/validate-existence", token,
		classExistenceReq{Classes: []existenceItem{{ID: classID}}}, &out)
	if err != nil {
		return "", false, err
	}
	if !out.Valid || len(out.Classes) == 0 {
		return "", false, nil
	}
	return out.Classes[0].Name, true, nil
}

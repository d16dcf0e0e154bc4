package client

import (
	"context"
	"time"
)

// RoomClient talks to the room registry, which owns room identities.
type RoomClient struct{ base }

// NewRoomClient returns a client for the room service at baseURL.
func NewRoomClient(baseURL string, timeout time.Duration) *RoomClient {
	return &RoomClient{base{service: "room", baseURL: baseURL, timeout: timeout}}
}

type roomExistenceReq struct {
	Rooms []existenceItem `json:"rooms"`
}

type roomExistenceResp struct {
	Valid bool            `json:"valid"`
	Rooms []existenceItem `json:"rooms,omitempty"`
}

// RoomName resolves a room id to its current display name, with ok=false
// when the registry does not know the id for this institution.
func (c *RoomClient) RoomName(ctx context.Context, token, roomID string) (name string, ok bool, err error) {
	var out roomExistenceResp
	err = c.doJSON(ctx, "POST", "/rooms/validate-existence", token,
		roomExistenceReq{Rooms: []existenceItem{{ID: roomID}}}, &out)
	if err != nil {
		return "", false, err
	}
	if !out.Valid || len(out.Rooms) == 0 {
		return "", false, nil
	}
	return out.Rooms[0].Name, true, nil
}

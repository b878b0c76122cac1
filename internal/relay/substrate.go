package relay

import "github.com/sheikah-slate/relay-server/internal/types"

// Substrate is the pub/sub transport primitive the coordinator relays
// through: room join/leave bookkeeping, per-connection delivery, and
// per-room broadcast. Delivery is fire-and-forget; the coordinator
// never learns whether a send landed. internal/ws provides the
// production implementation.
type Substrate interface {
	Join(connID, roomKey string)
	Leave(connID, roomKey string)
	// Members lists the connection ids currently joined to the room, in
	// join order. Unknown rooms yield an empty slice.
	Members(roomKey string) []string
	Send(connID string, env types.Envelope)
	// Broadcast delivers to every member of the room except the listed
	// connection ids.
	Broadcast(roomKey string, env types.Envelope, except ...string)
}

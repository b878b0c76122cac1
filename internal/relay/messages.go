package relay

import (
	"encoding/json"

	"github.com/sheikah-slate/relay-server/internal/game"
)

type Msg interface{ isRelayMsg() }

// Connect announces a new connection whose outbox is already attached
// to the substrate. The coordinator assigns a name and emits identity.
type Connect struct{ ConnID string }

// JoinRoom binds a connection to a room key, unbinding any previous
// room first.
type JoinRoom struct {
	ConnID  string
	RoomKey string
}

// Inbound is a chat_message payload: either a command or a plain
// message to tag, store, and relay.
type Inbound struct {
	ConnID  string
	Payload json.RawMessage
}

// Nudge and Typing are relayed to the room minus the sender as the
// sender's name.
type Nudge struct{ ConnID string }

type Typing struct{ ConnID string }

// Reaction relays its payload verbatim to the room minus the sender.
type Reaction struct {
	ConnID  string
	Payload json.RawMessage
}

// Disconnect tears down presence, room binding, and any pending
// challenge the connection owns in its bound room.
type Disconnect struct{ ConnID string }

// GetView reflects internal state without data races; it doubles as a
// barrier in tests since the loop handles messages in order.
type GetView struct{ Reply chan View }

// View is a copy of the coordinator's state for inspection.
type View struct {
	NumConnections int
	Bound          map[string]string
	Pending        map[string]game.Challenge
	HistoryLen     int
}

func (Connect) isRelayMsg()    {}
func (JoinRoom) isRelayMsg()   {}
func (Inbound) isRelayMsg()    {}
func (Nudge) isRelayMsg()      {}
func (Typing) isRelayMsg()     {}
func (Reaction) isRelayMsg()   {}
func (Disconnect) isRelayMsg() {}
func (GetView) isRelayMsg()    {}

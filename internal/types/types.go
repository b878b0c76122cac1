package types

import "encoding/json"

// Envelope is the framing for every message in both directions:
// an event name plus an event-specific payload left undecoded until
// someone actually needs it.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound event names.
const (
	EvJoin     = "join"
	EvChat     = "chat_message"
	EvNudge    = "nudge"
	EvTyping   = "typing"
	EvReaction = "reaction"
)

// Outbound event names.
const (
	EvIdentity   = "identity"
	EvHistory    = "history"
	EvRoomUpdate = "room_update"
	EvSystem     = "system_alert"
	EvNudgeAlert = "nudge_alert"
)

// RoomUpdate is the membership snapshot broadcast whenever a room's
// composition changes.
type RoomUpdate struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// SystemAlert carries command results and usage errors. KeyHash is set
// only on room-wide alerts.
type SystemAlert struct {
	Text    string `json:"text"`
	KeyHash string `json:"keyHash,omitempty"`
}

// NewEnvelope marshals v into an Envelope for the given event.
func NewEnvelope(event string, v any) (Envelope, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Data: data}, nil
}

// TagFields returns a copy of the JSON object raw with the given string
// fields added. Existing field values pass through byte-for-byte; the
// relay must never re-encode a client payload.
func TagFields(raw json.RawMessage, fields map[string]string) (json.RawMessage, error) {
	obj := map[string]json.RawMessage{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
	}
	for k, v := range fields {
		enc, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = enc
	}
	return json.Marshal(obj)
}

// TextField extracts the "text" field of a JSON object payload, or ""
// if the payload is not an object or the field is absent or not a string.
func TextField(raw json.RawMessage) string {
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	return obj.Text
}

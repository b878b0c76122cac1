// Package history holds the bounded message log used to replay a
// room's recent traffic to late joiners. The bound is global across
// rooms, not per room: once full, the oldest record process-wide is
// evicted no matter which room it belongs to.
package history

import "encoding/json"

// DefaultLimit matches the relay's original retention of 50 records.
const DefaultLimit = 50

// Record is one stored message: the room it belongs to and the tagged
// payload exactly as it was relayed.
type Record struct {
	RoomKey string
	Data    json.RawMessage
}

type Buffer struct {
	limit   int
	records []Record
}

func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Buffer{limit: limit}
}

// Append adds a record, evicting the oldest record in the buffer when
// the global bound is exceeded.
func (b *Buffer) Append(rec Record) {
	b.records = append(b.records, rec)
	if len(b.records) > b.limit {
		b.records = b.records[1:]
	}
}

// ForRoom returns the stored payloads for one room in insertion order.
func (b *Buffer) ForRoom(roomKey string) []json.RawMessage {
	out := []json.RawMessage{}
	for _, rec := range b.records {
		if rec.RoomKey == roomKey {
			out = append(out, rec.Data)
		}
	}
	return out
}

func (b *Buffer) Len() int { return len(b.records) }

package history

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(room string, n int) Record {
	return Record{RoomKey: room, Data: json.RawMessage(fmt.Sprintf(`{"id":"%d"}`, n))}
}

func TestReplayPreservesInsertionOrder(t *testing.T) {
	b := NewBuffer(50)
	for i := 1; i <= 10; i++ {
		b.Append(rec("room-a", i))
	}

	got := b.ForRoom("room-a")
	require.Len(t, got, 10)
	for i, raw := range got {
		assert.JSONEq(t, fmt.Sprintf(`{"id":"%d"}`, i+1), string(raw))
	}
}

func TestReplayFiltersByRoom(t *testing.T) {
	b := NewBuffer(50)
	b.Append(rec("room-a", 1))
	b.Append(rec("room-b", 2))
	b.Append(rec("room-a", 3))

	got := b.ForRoom("room-a")
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"id":"1"}`, string(got[0]))
	assert.JSONEq(t, `{"id":"3"}`, string(got[1]))

	assert.Empty(t, b.ForRoom("room-c"))
}

func TestGlobalBoundEvictsOldestFirst(t *testing.T) {
	b := NewBuffer(50)
	// 51 records spread over two rooms; eviction is global, so record #1
	// goes regardless of its room.
	for i := 1; i <= 51; i++ {
		room := "room-a"
		if i%2 == 0 {
			room = "room-b"
		}
		b.Append(rec(room, i))
	}

	assert.Equal(t, 50, b.Len())

	roomA := b.ForRoom("room-a")
	require.NotEmpty(t, roomA)
	// Record #1 (room-a) was evicted; room-a now starts at #3.
	assert.JSONEq(t, `{"id":"3"}`, string(roomA[0]))
	// Record #2 is now the oldest overall.
	roomB := b.ForRoom("room-b")
	assert.JSONEq(t, `{"id":"2"}`, string(roomB[0]))
}

func TestZeroLimitFallsBackToDefault(t *testing.T) {
	b := NewBuffer(0)
	for i := 0; i < DefaultLimit+5; i++ {
		b.Append(rec("r", i))
	}
	assert.Equal(t, DefaultLimit, b.Len())
}

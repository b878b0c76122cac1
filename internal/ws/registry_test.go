package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sheikah-slate/relay-server/internal/types"
)

func env(event string) types.Envelope {
	return types.Envelope{Event: event, Data: json.RawMessage(`{}`)}
}

func drain(ch <-chan types.Envelope) []types.Envelope {
	var out []types.Envelope
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestMembersInJoinOrder(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	r.Attach("c1")
	r.Attach("c2")
	r.Attach("c3")
	r.Join("c1", "room")
	r.Join("c2", "room")
	r.Join("c3", "room")
	r.Join("c2", "room") // duplicate join is a no-op

	assert.Equal(t, []string{"c1", "c2", "c3"}, r.Members("room"))
	assert.Empty(t, r.Members("empty-room"))

	r.Leave("c2", "room")
	assert.Equal(t, []string{"c1", "c3"}, r.Members("room"))
}

func TestBroadcastSkipsExcept(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	out1 := r.Attach("c1")
	out2 := r.Attach("c2")
	r.Join("c1", "room")
	r.Join("c2", "room")

	r.Broadcast("room", env("chat_message"), "c1")

	assert.Empty(t, drain(out1))
	got := drain(out2)
	require.Len(t, got, 1)
	assert.Equal(t, "chat_message", got[0].Event)
}

func TestSendToUnknownConnIsNoop(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	r.Send("ghost", env("identity"))
}

func TestDetachClosesOutboxAndLeavesRooms(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	out := r.Attach("c1")
	r.Join("c1", "room")

	r.Detach("c1")
	r.Detach("c1") // idempotent

	_, ok := <-out
	assert.False(t, ok, "outbox closed")
	assert.Empty(t, r.Members("room"))
}

func TestSlowConnectionIsDropped(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	out := r.Attach("c1")
	r.Join("c1", "room")

	for i := 0; i < outboxSize+1; i++ {
		r.Send("c1", env("chat_message"))
	}

	got := drain(out)
	assert.Len(t, got, outboxSize)
	assert.Empty(t, r.Members("room"), "overflowing connection removed")
}

package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sheikah-slate/relay-server/internal/types"
)

const outboxSize = 16

// Registry is the in-process pub/sub substrate: per-connection outbox
// channels plus room membership in join order. It is the one structure
// touched from both the coordinator loop and the per-connection
// goroutines, hence the lock.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]chan types.Envelope
	rooms map[string][]string
	log   *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		conns: make(map[string]chan types.Envelope),
		rooms: make(map[string][]string),
		log:   log,
	}
}

// Attach creates the connection's outbox. The caller owns draining it;
// the registry closes it when the connection detaches or falls behind.
func (r *Registry) Attach(connID string) <-chan types.Envelope {
	out := make(chan types.Envelope, outboxSize)
	r.mu.Lock()
	r.conns[connID] = out
	r.mu.Unlock()
	return out
}

// Detach closes the outbox and removes the connection from every room.
// Idempotent.
func (r *Registry) Detach(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drop(connID)
}

// drop removes connID everywhere. Caller holds the lock.
func (r *Registry) drop(connID string) {
	out, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)
	close(out)
	for key, members := range r.rooms {
		r.rooms[key] = remove(members, connID)
	}
}

func (r *Registry) Join(connID, roomKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.rooms[roomKey] {
		if id == connID {
			return
		}
	}
	r.rooms[roomKey] = append(r.rooms[roomKey], connID)
}

func (r *Registry) Leave(connID, roomKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[roomKey] = remove(r.rooms[roomKey], connID)
}

func (r *Registry) Members(roomKey string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.rooms[roomKey]...)
}

func (r *Registry) Send(connID string, env types.Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send(connID, env)
}

func (r *Registry) Broadcast(roomKey string, env types.Envelope, except ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := append([]string(nil), r.rooms[roomKey]...)
	for _, id := range members {
		if contains(except, id) {
			continue
		}
		r.send(id, env)
	}
}

// send delivers without blocking; a full outbox means the reader fell
// too far behind and the connection is dropped. Caller holds the lock.
func (r *Registry) send(connID string, env types.Envelope) {
	out, ok := r.conns[connID]
	if !ok {
		return
	}
	select {
	case out <- env:
	default:
		r.log.Warn("dropping slow connection", zap.String("conn", connID))
		r.drop(connID)
	}
}

func remove(ids []string, connID string) []string {
	for i, id := range ids {
		if id == connID {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func contains(ids []string, connID string) bool {
	for _, id := range ids {
		if id == connID {
			return true
		}
	}
	return false
}

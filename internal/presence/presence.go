// Package presence maps live connections to display names. Names are
// drawn at random from a fixed roster; collisions across connections
// are allowed and expected.
package presence

import "math/rand"

// Unknown is the placeholder for connections with no registered name.
const Unknown = "Unknown"

var roster = []string{
	"Link", "Zelda", "Ganondorf", "Impa", "Sidon",
	"Mipha", "Daruk", "Revali", "Urbosa", "Hestu",
	"Kass", "Riju", "Yunobo", "Teba", "Purah", "Robbie",
}

// pickName is a var so tests can pin the draw.
var pickName = func() string {
	return roster[rand.Intn(len(roster))]
}

type Registry struct {
	names map[string]string
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]string)}
}

// Assign picks a roster name for the connection and remembers it.
// Re-assigning an id overwrites the previous name.
func (r *Registry) Assign(connID string) string {
	name := pickName()
	r.names[connID] = name
	return name
}

// Remove forgets the connection's name. Idempotent.
func (r *Registry) Remove(connID string) {
	delete(r.names, connID)
}

// Lookup returns the connection's name, or Unknown if none registered.
func (r *Registry) Lookup(connID string) string {
	if name, ok := r.names[connID]; ok {
		return name
	}
	return Unknown
}

func (r *Registry) Len() int { return len(r.names) }

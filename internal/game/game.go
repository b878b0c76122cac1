// Package game implements the per-room rock-paper-scissors state
// machine. A room is either idle or holding exactly one pending
// challenge; a second valid move resolves it and returns the room to
// idle. The resolver never looks at connection identity when resolving,
// so a challenger answering their own challenge plays against
// themselves (preserved behavior, exercised in the relay tests).
package game

import "strings"

type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// ParseMove matches a move token case-insensitively against the three
// canonical choices.
func ParseMove(token string) (Move, bool) {
	switch Move(strings.ToLower(token)) {
	case MoveRock:
		return MoveRock, true
	case MovePaper:
		return MovePaper, true
	case MoveScissors:
		return MoveScissors, true
	default:
		return "", false
	}
}

// Beats reports whether m wins against other: rock beats scissors,
// scissors beats paper, paper beats rock.
func (m Move) Beats(other Move) bool {
	switch m {
	case MoveRock:
		return other == MoveScissors
	case MoveScissors:
		return other == MovePaper
	case MovePaper:
		return other == MoveRock
	default:
		return false
	}
}

// Challenge is the stored half of an unanswered game.
type Challenge struct {
	ConnID string
	Name   string
	Move   Move
}

// Result describes what a Play did: either it opened a new challenge
// (Opened true, Challenger set) or it resolved the pending one
// (Opened false, both sides set).
type Result struct {
	Opened     bool
	Challenger Challenge
	Responder  Challenge
}

// Winner returns the winning side of a resolved game, or false on a
// draw. Calling it on an opening result is meaningless.
func (r Result) Winner() (Challenge, bool) {
	if r.Challenger.Move.Beats(r.Responder.Move) {
		return r.Challenger, true
	}
	if r.Responder.Move.Beats(r.Challenger.Move) {
		return r.Responder, true
	}
	return Challenge{}, false
}

// Resolver keys pending challenges by room so every room plays
// independently.
type Resolver struct {
	pending map[string]Challenge
}

func NewResolver() *Resolver {
	return &Resolver{pending: make(map[string]Challenge)}
}

// Play submits a valid move for a room. With no pending challenge it
// stores one and reports Opened; otherwise it consumes the pending
// challenge and returns the matchup.
func (r *Resolver) Play(roomKey, connID, name string, mv Move) Result {
	responder := Challenge{ConnID: connID, Name: name, Move: mv}
	if challenger, ok := r.pending[roomKey]; ok {
		delete(r.pending, roomKey)
		return Result{Challenger: challenger, Responder: responder}
	}
	r.pending[roomKey] = responder
	return Result{Opened: true, Challenger: responder}
}

// Abandon deletes the room's pending challenge if connID owns it, for
// silent cleanup when the challenger disconnects unanswered.
func (r *Resolver) Abandon(roomKey, connID string) bool {
	if ch, ok := r.pending[roomKey]; ok && ch.ConnID == connID {
		delete(r.pending, roomKey)
		return true
	}
	return false
}

// Pending returns the room's unanswered challenge, if any.
func (r *Resolver) Pending(roomKey string) (Challenge, bool) {
	ch, ok := r.pending[roomKey]
	return ch, ok
}

// Snapshot copies the pending map for inspection in tests.
func (r *Resolver) Snapshot() map[string]Challenge {
	out := make(map[string]Challenge, len(r.pending))
	for k, v := range r.pending {
		out[k] = v
	}
	return out
}

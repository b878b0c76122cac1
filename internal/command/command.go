// Package command turns the leading-slash text of a chat payload into
// a closed set of typed commands, validated once at parse time.
package command

import (
	"strings"

	"github.com/sheikah-slate/relay-server/internal/game"
)

// Marker is the sentinel that makes a text field a command.
const Marker = "/"

type Command interface{ isCommand() }

// Play is a game command carrying a validated move.
type Play struct{ Move game.Move }

// BadMove is a game command whose move token failed validation; the
// sender gets a private usage error.
type BadMove struct{ Token string }

// Roll asks for a d20 draw announced to the room.
type Roll struct{}

// Flip asks for a coin flip announced to the room.
type Flip struct{}

// Trivia asks for a random question from the fixed set.
type Trivia struct{}

func (Play) isCommand()    {}
func (BadMove) isCommand() {}
func (Roll) isCommand()    {}
func (Flip) isCommand()    {}
func (Trivia) isCommand()  {}

// Parse resolves a text field into a command. It returns false when the
// text is not a recognized command at all; unknown slash-words fall
// through to the plain message path, matching the relay's original
// behavior. Command words match case-insensitively.
func Parse(text string) (Command, bool) {
	if !strings.HasPrefix(text, Marker) {
		return nil, false
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	switch strings.ToLower(fields[0]) {
	case "/rps":
		if len(fields) < 2 {
			return BadMove{}, true
		}
		mv, ok := game.ParseMove(fields[1])
		if !ok {
			return BadMove{Token: fields[1]}, true
		}
		return Play{Move: mv}, true
	case "/roll":
		return Roll{}, true
	case "/flip":
		return Flip{}, true
	case "/trivia":
		return Trivia{}, true
	default:
		return nil, false
	}
}

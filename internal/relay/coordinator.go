// Package relay implements the room coordinator: a single goroutine
// that owns presence, history, and game state, and relays everything
// else untouched through the transport substrate. One logical thread of
// control mutates all shared state, so the single-pending-challenge and
// FIFO-eviction invariants hold without locks.
package relay

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sheikah-slate/relay-server/internal/command"
	"github.com/sheikah-slate/relay-server/internal/game"
	"github.com/sheikah-slate/relay-server/internal/history"
	"github.com/sheikah-slate/relay-server/internal/presence"
	"github.com/sheikah-slate/relay-server/internal/types"
)

const rpsUsage = "⚠️ Usage: /rps rock, /rps paper, or /rps scissors"

type Coordinator struct {
	inbox    chan Msg
	sub      Substrate
	presence *presence.Registry
	history  *history.Buffer
	games    *game.Resolver
	bound    map[string]string // connID -> room key, "" never stored
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewCoordinator(parent context.Context, sub Substrate, historyLimit int, log *zap.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(parent)
	c := &Coordinator{
		inbox:    make(chan Msg, 64),
		sub:      sub,
		presence: presence.NewRegistry(),
		history:  history.NewBuffer(historyLimit),
		games:    game.NewResolver(),
		bound:    make(map[string]string),
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go c.loop()
	return c
}

// Inbox is the only way in; each message runs to completion before the
// next is taken.
func (c *Coordinator) Inbox() chan<- Msg { return c.inbox }

func (c *Coordinator) loop() {
	for {
		select {
		case <-c.ctx.Done():
			return

		case m := <-c.inbox:
			switch msg := m.(type) {
			case Connect:
				c.handleConnect(msg)
			case JoinRoom:
				c.handleJoin(msg)
			case Inbound:
				c.handleInbound(msg)
			case Nudge:
				c.relayName(msg.ConnID, types.EvNudgeAlert)
			case Typing:
				c.relayName(msg.ConnID, types.EvTyping)
			case Reaction:
				c.handleReaction(msg)
			case Disconnect:
				c.handleDisconnect(msg)
			case GetView:
				msg.Reply <- c.view()
			}
		}
	}
}

func (c *Coordinator) handleConnect(msg Connect) {
	name := c.presence.Assign(msg.ConnID)
	c.emit(msg.ConnID, types.EvIdentity, name)
	c.log.Info("connection named", zap.String("conn", msg.ConnID), zap.String("name", name))
}

func (c *Coordinator) handleJoin(msg JoinRoom) {
	if prev, ok := c.bound[msg.ConnID]; ok {
		c.sub.Leave(msg.ConnID, prev)
	}
	c.bound[msg.ConnID] = msg.RoomKey
	c.sub.Join(msg.ConnID, msg.RoomKey)

	// Replay before the membership snapshot so the joiner renders
	// history under the pre-announcement state.
	c.emit(msg.ConnID, types.EvHistory, c.history.ForRoom(msg.RoomKey))
	c.updateRoom(msg.RoomKey)
}

// updateRoom broadcasts the current membership snapshot to everyone in
// the room, the triggering connection included. The substrate query
// happens after the state mutation so the snapshot reflects it.
func (c *Coordinator) updateRoom(roomKey string) {
	if roomKey == "" {
		return
	}
	ids := c.sub.Members(roomKey)
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = c.presence.Lookup(id)
	}
	c.broadcast(roomKey, types.EvRoomUpdate, types.RoomUpdate{Count: len(names), Names: names})
}

func (c *Coordinator) handleInbound(msg Inbound) {
	room, ok := c.bound[msg.ConnID]
	if !ok {
		// Sent before joining; dropped by contract.
		return
	}
	sender := c.presence.Lookup(msg.ConnID)

	if text := types.TextField(msg.Payload); strings.HasPrefix(text, command.Marker) {
		if cmd, ok := command.Parse(text); ok {
			c.handleCommand(room, msg.ConnID, sender, cmd)
			return
		}
		// Unrecognized slash-word: plain message path.
	}

	stored, err := types.TagFields(msg.Payload, map[string]string{"keyHash": room, "user": sender})
	if err != nil {
		c.log.Warn("unparseable chat payload", zap.String("conn", msg.ConnID), zap.Error(err))
		return
	}
	c.history.Append(history.Record{RoomKey: room, Data: stored})

	relayed, err := types.TagFields(msg.Payload, map[string]string{"user": sender})
	if err != nil {
		return
	}
	c.sub.Broadcast(room, types.Envelope{Event: types.EvChat, Data: relayed}, msg.ConnID)
}

func (c *Coordinator) handleCommand(room, connID, sender string, cmd command.Command) {
	switch cmd := cmd.(type) {
	case command.BadMove:
		// Usage errors go to the sender only.
		c.emit(connID, types.EvSystem, types.SystemAlert{Text: rpsUsage})

	case command.Play:
		res := c.games.Play(room, connID, sender, cmd.Move)
		if res.Opened {
			c.announce(room, fmt.Sprintf(
				"⚔️ %s is waiting for a challenger!\n(Type /rps [move] to fight)", sender))
			return
		}
		outcome := "It's a DRAW!"
		if winner, ok := res.Winner(); ok {
			outcome = fmt.Sprintf("%s WINS!", winner.Name)
		}
		c.announce(room, fmt.Sprintf("⚔️ RPS BATTLE:\n%s (%s) vs %s (%s)\n🏆 %s",
			res.Challenger.Name, strings.ToUpper(string(res.Challenger.Move)),
			res.Responder.Name, strings.ToUpper(string(res.Responder.Move)),
			outcome))

	case command.Roll:
		c.announce(room, fmt.Sprintf("🎲 %s rolled a %d!", sender, rollDie()))

	case command.Flip:
		c.announce(room, fmt.Sprintf("🪙 %s flipped a coin: %s!", sender, flipCoin()))

	case command.Trivia:
		c.announce(room, fmt.Sprintf("🧠 TRIVIA: %s", pickTrivia()))
	}
}

// announce broadcasts a command result to the whole room, sender
// included.
func (c *Coordinator) announce(roomKey, text string) {
	c.broadcast(roomKey, types.EvSystem, types.SystemAlert{Text: text, KeyHash: roomKey})
}

// relayName sends the sender's display name to the rest of the room,
// used by the nudge and typing signals.
func (c *Coordinator) relayName(connID, event string) {
	room, ok := c.bound[connID]
	if !ok {
		return
	}
	env, err := types.NewEnvelope(event, c.presence.Lookup(connID))
	if err != nil {
		return
	}
	c.sub.Broadcast(room, env, connID)
}

func (c *Coordinator) handleReaction(msg Reaction) {
	room, ok := c.bound[msg.ConnID]
	if !ok {
		return
	}
	// Verbatim pass-through: no validation, no tally bookkeeping.
	c.sub.Broadcast(room, types.Envelope{Event: types.EvReaction, Data: msg.Payload}, msg.ConnID)
}

func (c *Coordinator) handleDisconnect(msg Disconnect) {
	room := c.bound[msg.ConnID]
	if room != "" && c.games.Abandon(room, msg.ConnID) {
		// Unanswered challenge dies with its owner, no announcement.
		c.log.Info("pending challenge abandoned", zap.String("room", room))
	}
	c.presence.Remove(msg.ConnID)
	delete(c.bound, msg.ConnID)
	if room != "" {
		c.sub.Leave(msg.ConnID, room)
		c.updateRoom(room)
	}
}

func (c *Coordinator) emit(connID, event string, v any) {
	env, err := types.NewEnvelope(event, v)
	if err != nil {
		c.log.Warn("encode failed", zap.String("event", event), zap.Error(err))
		return
	}
	c.sub.Send(connID, env)
}

func (c *Coordinator) broadcast(roomKey, event string, v any, except ...string) {
	env, err := types.NewEnvelope(event, v)
	if err != nil {
		c.log.Warn("encode failed", zap.String("event", event), zap.Error(err))
		return
	}
	c.sub.Broadcast(roomKey, env, except...)
}

func (c *Coordinator) view() View {
	bound := make(map[string]string, len(c.bound))
	for k, v := range c.bound {
		bound[k] = v
	}
	return View{
		NumConnections: c.presence.Len(),
		Bound:          bound,
		Pending:        c.games.Snapshot(),
		HistoryLen:     c.history.Len(),
	}
}

// Shutdown stops the loop. In-flight messages already taken from the
// inbox finish first.
func (c *Coordinator) Shutdown() { c.cancel() }

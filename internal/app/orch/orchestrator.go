// Package orch routes inbound signaling events: it reads and mutates
// room and connection state, then fans the results out as addressed
// unicasts and room broadcasts.
package orch

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/app"
	"github.com/huddlelabs/huddle/internal/core"
	"github.com/huddlelabs/huddle/internal/domain"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.RoomManager
	// ICEServers is forwarded verbatim inside every establishConnection
	// payload; the server never interprets it.
	ICEServers []webrtc.ICEServer
}

// Disconnect runs the full leave path for every room the connection was
// in, then drops it from the registry. A connection drop is the only
// cancellation signal there is.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	for _, room := range o.Registry.RoomsOf(id) {
		o.Leave(id, room)
	}
	o.Registry.Unregister(id)
	log.Info().Str("module", "orch").Str("conn", string(id)).Msg("disconnected")
}

func (o *Orchestrator) encode(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode event")
		return nil, false
	}
	return core.Frame(b), true
}

// sendToPeer delivers to exactly one connection. An unknown target is
// not an error: peers may disconnect between an action being initiated
// and delivered.
func (o *Orchestrator) sendToPeer(id domain.ConnID, v any) {
	frame, ok := o.encode(v)
	if !ok {
		return
	}
	o.sendRaw(id, frame)
}

func (o *Orchestrator) sendRaw(id domain.ConnID, frame core.Frame) {
	conn, ok := o.Registry.Get(id)
	if !ok {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Msg("unicast target not connected, dropped")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("unicast dropped")
	}
}

// broadcastToRoom delivers to every current member of room except the
// sender. Delivery is best-effort: a full buffer drops the frame.
func (o *Orchestrator) broadcastToRoom(room domain.RoomID, except domain.ConnID, v any) {
	frame, ok := o.encode(v)
	if !ok {
		return
	}
	o.broadcastRaw(room, except, frame)
}

func (o *Orchestrator) broadcastRaw(room domain.RoomID, except domain.ConnID, frame core.Frame) {
	for _, member := range o.Rooms.Members(room) {
		if member == except {
			continue
		}
		o.sendRaw(member, frame)
	}
}

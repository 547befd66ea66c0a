package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/app"
	"github.com/huddlelabs/huddle/internal/domain"
	"github.com/huddlelabs/huddle/internal/events"
)

// Join gates the request against the room's lock state, records the
// peer, and wires the full mesh: every existing member P is told about
// the joiner with shouldInitiateOffer=false, while the joiner is told
// about P with shouldInitiateOffer=true. Per unordered member pair
// exactly one side initiates the offer: the newer joiner.
func (o *Orchestrator) Join(id domain.ConnID, ev events.Join) {
	info := domain.PeerInfo{
		Name:  ev.PeerName,
		Video: ev.Video,
		Audio: ev.Audio,
		Hand:  ev.Hand,
		Rec:   ev.Rec,
	}

	status, snapshot, others := o.Rooms.Join(ev.Room, id, info, ev.Password)
	switch status {
	case app.JoinDuplicate:
		return
	case app.JoinLocked:
		o.sendToPeer(id, events.NewRoomLocked())
		return
	}
	o.Registry.AddRoom(id, ev.Room)

	for _, other := range others {
		o.sendToPeer(other, events.EstablishConnection{
			Type:                events.TypeEstablishConnection,
			TargetPeerID:        id,
			Peers:               snapshot,
			ShouldInitiateOffer: false,
			ICEServers:          o.ICEServers,
		})
		o.sendToPeer(id, events.EstablishConnection{
			Type:                events.TypeEstablishConnection,
			TargetPeerID:        other,
			Peers:               snapshot,
			ShouldInitiateOffer: true,
			ICEServers:          o.ICEServers,
		})
		log.Debug().Str("module", "orch").Str("conn", string(id)).Str("peer", string(other)).Str("room", string(ev.Room)).Msg("establishConnection pair emitted")
	}
}

// Leave removes the member and tears the mesh down symmetrically: every
// remaining member learns the leaver is gone, and the leaver (if still
// reachable) gets a teardown for each of them. The symmetric side lets a
// client clean up local state when it leaves a room for several reasons
// at once.
func (o *Orchestrator) Leave(id domain.ConnID, room domain.RoomID) {
	ok, remaining := o.Rooms.Leave(room, id)
	if !ok {
		return
	}
	o.Registry.RemoveRoom(id, room)

	for _, member := range remaining {
		o.sendToPeer(member, events.NewTeardownConnection(id))
		o.sendToPeer(id, events.NewTeardownConnection(member))
	}
}

package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/domain"
	"github.com/huddlelabs/huddle/internal/events"
)

// RoomAction handles lock, unlock and checkPassword. Lock and unlock are
// announced to the rest of the room; checkPassword answers the requester
// only and never mutates state.
func (o *Orchestrator) RoomAction(id domain.ConnID, ev events.RoomAction) {
	switch ev.Action {
	case events.ActionLock:
		if !o.Rooms.Lock(ev.Room, ev.Password) {
			return
		}
		o.broadcastToRoom(ev.Room, id, events.RoomActionOut{
			Type:     events.TypeRoomAction,
			PeerName: ev.PeerName,
			Action:   ev.Action,
		})
	case events.ActionUnlock:
		if !o.Rooms.Unlock(ev.Room) {
			return
		}
		o.broadcastToRoom(ev.Room, id, events.RoomActionOut{
			Type:     events.TypeRoomAction,
			PeerName: ev.PeerName,
			Action:   ev.Action,
		})
	case events.ActionCheckPassword:
		o.sendToPeer(id, events.RoomActionOut{
			Type:     events.TypeRoomAction,
			PeerName: ev.PeerName,
			Action:   ev.Action,
			Password: o.Rooms.CheckPassword(ev.Room, ev.Password),
		})
	}
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(ev.Room)).Str("action", ev.Action).Msg("room action")
}

// RenamePeer updates the first record matching the old display name and
// announces the new name to the rest of the room. No match, no
// broadcast.
func (o *Orchestrator) RenamePeer(id domain.ConnID, ev events.RenamePeer) {
	target, ok := o.Rooms.Rename(ev.Room, ev.OldName, ev.NewName)
	if !ok {
		log.Warn().Str("module", "orch").Str("room", string(ev.Room)).Str("name", ev.OldName).Msg("rename: no matching peer")
		return
	}
	o.broadcastToRoom(ev.Room, id, events.RenamePeerOut{
		Type:     events.TypeRenamePeer,
		PeerID:   target,
		PeerName: ev.NewName,
	})
}

// PeerStatus flips one status flag on the named peer and relays the
// change to the rest of the room. The relay happens even when no record
// matched; the store update is best-effort.
func (o *Orchestrator) PeerStatus(id domain.ConnID, ev events.PeerStatus) {
	if !o.Rooms.UpdateStatus(ev.Room, ev.PeerName, ev.Element, ev.Status) {
		log.Debug().Str("module", "orch").Str("room", string(ev.Room)).Str("name", ev.PeerName).Str("element", ev.Element).Msg("peerStatus: no matching peer")
	}
	o.broadcastToRoom(ev.Room, id, events.PeerStatusOut{
		Type:     events.TypePeerStatus,
		PeerID:   id,
		PeerName: ev.PeerName,
		Element:  ev.Element,
		Status:   ev.Status,
	})
}

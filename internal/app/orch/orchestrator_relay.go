package orch

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/core"
	"github.com/huddlelabs/huddle/internal/domain"
	"github.com/huddlelabs/huddle/internal/events"
)

// RelayCandidate forwards an address candidate to its one negotiation
// partner. Negotiation data is never broadcast.
func (o *Orchestrator) RelayCandidate(id domain.ConnID, ev events.RelayCandidate) {
	o.sendToPeer(ev.TargetPeerID, events.CandidateOut{
		Type:      events.TypeCandidate,
		PeerID:    id,
		Candidate: ev.Candidate,
	})
}

func (o *Orchestrator) RelaySessionDescription(id domain.ConnID, ev events.RelaySessionDescription) {
	log.Debug().Str("module", "orch").Str("from", string(id)).Str("to", string(ev.TargetPeerID)).Msg("relay session description")
	o.sendToPeer(ev.TargetPeerID, events.SessionDescriptionOut{
		Type:               events.TypeSessionDescription,
		PeerID:             id,
		SessionDescription: ev.SessionDescription,
	})
}

// PeerAction goes to one peer when a target id is supplied, otherwise to
// the whole room except the sender. The target id is the sole
// discriminator.
func (o *Orchestrator) PeerAction(id domain.ConnID, ev events.PeerAction) {
	out := events.PeerActionOut{
		Type:     events.TypePeerAction,
		PeerName: ev.PeerName,
		Action:   ev.Action,
	}
	if ev.TargetPeerID != "" {
		o.sendToPeer(ev.TargetPeerID, out)
		return
	}
	o.broadcastToRoom(ev.Room, id, out)
}

// Kick tells the named client to terminate its own session. No
// membership is mutated here; the kicked client's disconnect drives the
// normal leave path.
func (o *Orchestrator) Kick(id domain.ConnID, ev events.Kick) {
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("target", string(ev.TargetPeerID)).Str("room", string(ev.Room)).Msg("kick")
	o.sendToPeer(ev.TargetPeerID, events.KickOut{
		Type:     events.TypeKick,
		PeerName: ev.PeerName,
	})
}

// FileInfo announces a file-transfer header to the room; the sender's
// display name travels with the header.
func (o *Orchestrator) FileInfo(id domain.ConnID, ev events.FileInfo) {
	file := ev.File
	file.PeerName = ev.PeerName
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(ev.Room)).Str("name", file.FileName).Str("size", bytesToSize(file.FileSize)).Msg("file offered")
	o.broadcastToRoom(ev.Room, id, events.FileInfoOut{
		Type: events.TypeFileInfo,
		File: file,
	})
}

func (o *Orchestrator) FileAbort(id domain.ConnID, ev events.FileAbort) {
	o.broadcastToRoom(ev.Room, id, events.FileAbortOut{
		Type:     events.TypeFileAbort,
		PeerName: ev.PeerName,
	})
}

// VideoSync mirrors shared-player state, unicast or broadcast on the
// same discriminator as PeerAction.
func (o *Orchestrator) VideoSync(id domain.ConnID, ev events.VideoSync) {
	out := events.VideoSyncOut{
		Type:     events.TypeVideoSync,
		PeerName: ev.PeerName,
		Action:   ev.Action,
		Src:      ev.Src,
	}
	if ev.TargetPeerID != "" {
		o.sendToPeer(ev.TargetPeerID, out)
		return
	}
	o.broadcastToRoom(ev.Room, id, out)
}

// Whiteboard rebroadcasts the original frame untouched; only the room
// routing field was interpreted.
func (o *Orchestrator) Whiteboard(id domain.ConnID, ev events.Whiteboard, frame core.Frame) {
	o.broadcastRaw(ev.Room, id, frame)
}

func bytesToSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGT"[exp])
}

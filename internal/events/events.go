// Package events defines the closed set of signaling messages exchanged
// with clients. Every inbound event carries a "type" tag used for
// dispatch; payload fields are explicit and validated before any handler
// touches room state.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/huddlelabs/huddle/internal/domain"
)

// Inbound event types.
const (
	TypeJoin                    = "join"
	TypeRelayCandidate          = "relayCandidate"
	TypeRelaySessionDescription = "relaySessionDescription"
	TypeRoomAction              = "roomAction"
	TypeRenamePeer              = "renamePeer"
	TypePeerStatus              = "peerStatus"
	TypePeerAction              = "peerAction"
	TypeKick                    = "kick"
	TypeFileInfo                = "fileInfo"
	TypeFileAbort               = "fileAbort"
	TypeVideoSync               = "videoSync"
	TypeWhiteboardSync          = "whiteboardSync"
	TypeWhiteboardAction        = "whiteboardAction"
)

// Outbound event types.
const (
	TypeRoomLocked          = "roomLocked"
	TypeEstablishConnection = "establishConnection"
	TypeTeardownConnection  = "teardownConnection"
	TypeCandidate           = "candidate"
	TypeSessionDescription  = "sessionDescription"
	TypeError               = "error"
)

// Room actions.
const (
	ActionLock          = "lock"
	ActionUnlock        = "unlock"
	ActionCheckPassword = "checkPassword"
)

// Envelope is the minimal view used to dispatch an inbound frame.
type Envelope struct {
	Type string `json:"type"`
}

type Join struct {
	Room     domain.RoomID `json:"room"`
	Password string        `json:"password"`
	PeerName string        `json:"peerName"`
	Video    bool          `json:"peerVideo"`
	Audio    bool          `json:"peerAudio"`
	Hand     bool          `json:"peerHand"`
	Rec      bool          `json:"peerRec"`
}

func (m Join) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("join: missing room")
	}
	if m.PeerName == "" {
		return fmt.Errorf("join: missing peerName")
	}
	if len(m.PeerName) > domain.MaxPeerNameLen {
		return fmt.Errorf("join: peerName longer than %d", domain.MaxPeerNameLen)
	}
	return nil
}

// RelayCandidate carries an address candidate for one negotiation
// partner. The candidate body is opaque to the server.
type RelayCandidate struct {
	TargetPeerID domain.ConnID   `json:"targetPeerId"`
	Candidate    json.RawMessage `json:"candidate"`
}

func (m RelayCandidate) Validate() error {
	if m.TargetPeerID == "" {
		return fmt.Errorf("relayCandidate: missing targetPeerId")
	}
	if len(m.Candidate) == 0 {
		return fmt.Errorf("relayCandidate: missing candidate")
	}
	return nil
}

type RelaySessionDescription struct {
	TargetPeerID       domain.ConnID   `json:"targetPeerId"`
	SessionDescription json.RawMessage `json:"sessionDescription"`
}

func (m RelaySessionDescription) Validate() error {
	if m.TargetPeerID == "" {
		return fmt.Errorf("relaySessionDescription: missing targetPeerId")
	}
	if len(m.SessionDescription) == 0 {
		return fmt.Errorf("relaySessionDescription: missing sessionDescription")
	}
	return nil
}

type RoomAction struct {
	Room     domain.RoomID `json:"roomId"`
	PeerName string        `json:"peerName"`
	Password string        `json:"password"`
	Action   string        `json:"action"`
}

func (m RoomAction) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("roomAction: missing roomId")
	}
	switch m.Action {
	case ActionLock, ActionUnlock, ActionCheckPassword:
		return nil
	}
	return fmt.Errorf("roomAction: unknown action %q", m.Action)
}

type RenamePeer struct {
	Room    domain.RoomID `json:"roomId"`
	OldName string        `json:"oldName"`
	NewName string        `json:"newName"`
}

func (m RenamePeer) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("renamePeer: missing roomId")
	}
	if m.OldName == "" || m.NewName == "" {
		return fmt.Errorf("renamePeer: missing oldName/newName")
	}
	if len(m.NewName) > domain.MaxPeerNameLen {
		return fmt.Errorf("renamePeer: newName longer than %d", domain.MaxPeerNameLen)
	}
	return nil
}

type PeerStatus struct {
	Room     domain.RoomID `json:"roomId"`
	PeerName string        `json:"peerName"`
	Element  string        `json:"element"`
	Status   bool          `json:"status"`
}

func (m PeerStatus) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("peerStatus: missing roomId")
	}
	if m.PeerName == "" {
		return fmt.Errorf("peerStatus: missing peerName")
	}
	if !domain.ValidElement(m.Element) {
		return fmt.Errorf("peerStatus: unknown element %q", m.Element)
	}
	return nil
}

// PeerAction is unicast when TargetPeerID is set, otherwise broadcast to
// the room except the sender.
type PeerAction struct {
	Room         domain.RoomID `json:"roomId"`
	PeerName     string        `json:"peerName"`
	Action       string        `json:"action"`
	TargetPeerID domain.ConnID `json:"targetPeerId,omitempty"`
}

func (m PeerAction) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("peerAction: missing roomId")
	}
	if m.Action == "" {
		return fmt.Errorf("peerAction: missing action")
	}
	return nil
}

type Kick struct {
	Room         domain.RoomID `json:"roomId"`
	TargetPeerID domain.ConnID `json:"targetPeerId"`
	PeerName     string        `json:"peerName"`
}

func (m Kick) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("kick: missing roomId")
	}
	if m.TargetPeerID == "" {
		return fmt.Errorf("kick: missing targetPeerId")
	}
	return nil
}

// FileMeta is the transfer header exchanged before peers stream file
// chunks over their direct link.
type FileMeta struct {
	PeerName string `json:"peerName,omitempty"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
}

type FileInfo struct {
	Room     domain.RoomID `json:"roomId"`
	PeerName string        `json:"peerName"`
	File     FileMeta      `json:"file"`
}

func (m FileInfo) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("fileInfo: missing roomId")
	}
	if m.File.FileName == "" {
		return fmt.Errorf("fileInfo: missing file.fileName")
	}
	return nil
}

type FileAbort struct {
	Room     domain.RoomID `json:"roomId"`
	PeerName string        `json:"peerName"`
}

func (m FileAbort) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("fileAbort: missing roomId")
	}
	return nil
}

// VideoSync is unicast when TargetPeerID is set, otherwise broadcast to
// the room except the sender.
type VideoSync struct {
	Room         domain.RoomID `json:"roomId"`
	PeerName     string        `json:"peerName"`
	Action       string        `json:"action"`
	Src          string        `json:"src,omitempty"`
	TargetPeerID domain.ConnID `json:"targetPeerId,omitempty"`
}

func (m VideoSync) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("videoSync: missing roomId")
	}
	if m.Action == "" {
		return fmt.Errorf("videoSync: missing action")
	}
	return nil
}

// Whiteboard carries an arbitrary client payload; only the room routing
// field is interpreted, the frame itself is rebroadcast untouched.
type Whiteboard struct {
	Room domain.RoomID `json:"roomId"`
}

func (m Whiteboard) Validate() error {
	if m.Room == "" {
		return fmt.Errorf("whiteboard: missing roomId")
	}
	return nil
}

// Outbound events. Each carries its own type tag so it can be handed to
// json.Marshal as-is.

type Error struct {
	Type    string `json:"type"`
	Message string `json:"error"`
}

func NewError(msg string) Error { return Error{Type: TypeError, Message: msg} }

type RoomLocked struct {
	Type string `json:"type"`
}

func NewRoomLocked() RoomLocked { return RoomLocked{Type: TypeRoomLocked} }

// EstablishConnection tells one side of a new member pair to set up a
// direct link. Exactly one side per pair has ShouldInitiateOffer true.
type EstablishConnection struct {
	Type                string                            `json:"type"`
	TargetPeerID        domain.ConnID                     `json:"targetPeerId"`
	Peers               map[domain.ConnID]domain.PeerInfo `json:"peers"`
	ShouldInitiateOffer bool                              `json:"shouldInitiateOffer"`
	ICEServers          []webrtc.ICEServer                `json:"iceServers"`
}

type TeardownConnection struct {
	Type         string        `json:"type"`
	TargetPeerID domain.ConnID `json:"targetPeerId"`
}

func NewTeardownConnection(target domain.ConnID) TeardownConnection {
	return TeardownConnection{Type: TypeTeardownConnection, TargetPeerID: target}
}

type CandidateOut struct {
	Type      string          `json:"type"`
	PeerID    domain.ConnID   `json:"peerId"`
	Candidate json.RawMessage `json:"candidate"`
}

type SessionDescriptionOut struct {
	Type               string          `json:"type"`
	PeerID             domain.ConnID   `json:"peerId"`
	SessionDescription json.RawMessage `json:"sessionDescription"`
}

type RoomActionOut struct {
	Type     string `json:"type"`
	PeerName string `json:"peerName"`
	Action   string `json:"action"`
	Password string `json:"password,omitempty"`
}

type RenamePeerOut struct {
	Type     string        `json:"type"`
	PeerID   domain.ConnID `json:"peerId"`
	PeerName string        `json:"peerName"`
}

type PeerStatusOut struct {
	Type     string        `json:"type"`
	PeerID   domain.ConnID `json:"peerId"`
	PeerName string        `json:"peerName"`
	Element  string        `json:"element"`
	Status   bool          `json:"status"`
}

type PeerActionOut struct {
	Type     string `json:"type"`
	PeerName string `json:"peerName"`
	Action   string `json:"action"`
}

type KickOut struct {
	Type     string `json:"type"`
	PeerName string `json:"peerName"`
}

type FileInfoOut struct {
	Type string   `json:"type"`
	File FileMeta `json:"file"`
}

type FileAbortOut struct {
	Type     string `json:"type"`
	PeerName string `json:"peerName"`
}

type VideoSyncOut struct {
	Type     string `json:"type"`
	PeerName string `json:"peerName"`
	Action   string `json:"action"`
	Src      string `json:"src,omitempty"`
}

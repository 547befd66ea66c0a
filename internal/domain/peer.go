// Package domain contains entities without logic, just meta-data
package domain

const MaxPeerNameLen = 36

// ConnID identifies one live signaling connection. Assigned at connect
// time, unique for the process lifetime.
type ConnID string

// PeerInfo is the participant identity of a connection inside one room:
// display name plus the status flags the clients mirror in their UI.
type PeerInfo struct {
	Name  string `json:"peerName"`
	Video bool   `json:"peerVideo"`
	Audio bool   `json:"peerAudio"`
	Hand  bool   `json:"peerHand"`
	Rec   bool   `json:"peerRec"`
}

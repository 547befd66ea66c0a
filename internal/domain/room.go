package domain

// RoomID is the caller-supplied room name. Rooms exist implicitly: the
// first join creates one, the last leave destroys it.
type RoomID string

// Status elements a peer may toggle.
const (
	ElementVideo = "video"
	ElementAudio = "audio"
	ElementHand  = "hand"
	ElementRec   = "rec"
)

// ValidElement reports whether e names a known status flag.
func ValidElement(e string) bool {
	switch e {
	case ElementVideo, ElementAudio, ElementHand, ElementRec:
		return true
	}
	return false
}

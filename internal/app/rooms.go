package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddlelabs/huddle/internal/domain"
)

// JoinStatus is the outcome of a join attempt.
type JoinStatus int

const (
	JoinOK JoinStatus = iota
	// JoinDuplicate: the connection is already a member. Idempotent
	// no-op, never surfaced to the client.
	JoinDuplicate
	// JoinLocked: the room is locked and the supplied password does not
	// match. No state changes.
	JoinLocked
)

const (
	PasswordOK = "OK"
	PasswordKO = "KO"
)

// roomState holds one room's membership with per-peer metadata, plus the
// access-control state. Lock and password are dedicated fields, never
// stored among the peer records, so "room is empty" is exactly
// len(peers) == 0.
type roomState struct {
	peers    map[domain.ConnID]domain.PeerInfo
	locked   bool
	password string
}

// RoomManager is the single writer for all room state. Rooms exist
// implicitly: created on first join, destroyed (lock and password
// included) when the last member leaves.
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*roomState
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[domain.RoomID]*roomState)}
}

// Join gates the attempt against the room's lock state and, on success,
// records membership and peer metadata in one step. It returns the full
// peer snapshot (joiner included) and the ids of the other members, both
// taken under the same lock so the mesh fan-out is consistent.
func (m *RoomManager) Join(room domain.RoomID, id domain.ConnID, info domain.PeerInfo, password string) (JoinStatus, map[domain.ConnID]domain.PeerInfo, []domain.ConnID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.rooms[room]
	if !ok {
		st = &roomState{peers: make(map[domain.ConnID]domain.PeerInfo)}
		m.rooms[room] = st
	}
	if _, member := st.peers[id]; member {
		log.Warn().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("already joined")
		return JoinDuplicate, nil, nil
	}
	if st.locked && st.password != password {
		log.Info().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("room is locked")
		return JoinLocked, nil, nil
	}

	others := make([]domain.ConnID, 0, len(st.peers))
	for member := range st.peers {
		others = append(others, member)
	}
	st.peers[id] = info

	snapshot := make(map[domain.ConnID]domain.PeerInfo, len(st.peers))
	for member, peer := range st.peers {
		snapshot[member] = peer
	}
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Int("members", len(st.peers)).Msg("member joined")
	return JoinOK, snapshot, others
}

// Leave removes membership and metadata atomically and returns the ids
// still in the room. When the last member leaves, the whole room record
// is discarded: a later join to the same name starts unlocked with no
// password.
func (m *RoomManager) Leave(room domain.RoomID, id domain.ConnID) (bool, []domain.ConnID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.rooms[room]
	if !ok {
		log.Warn().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("leave of unknown room")
		return false, nil
	}
	if _, member := st.peers[id]; !member {
		log.Warn().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Msg("leave of non-member")
		return false, nil
	}
	delete(st.peers, id)

	if len(st.peers) == 0 {
		delete(m.rooms, room)
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room destroyed")
		return true, nil
	}
	remaining := make([]domain.ConnID, 0, len(st.peers))
	for member := range st.peers {
		remaining = append(remaining, member)
	}
	log.Info().Str("module", "app.rooms").Str("conn", string(id)).Str("room", string(room)).Int("members", len(remaining)).Msg("member left")
	return true, remaining
}

func (m *RoomManager) Members(room domain.RoomID) []domain.ConnID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.rooms[room]
	if !ok {
		return nil
	}
	out := make([]domain.ConnID, 0, len(st.peers))
	for member := range st.peers {
		out = append(out, member)
	}
	return out
}

func (m *RoomManager) Exists(room domain.RoomID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[room]
	return ok
}

// Lock marks the room locked with the given password. No-op when the
// room does not exist.
func (m *RoomManager) Lock(room domain.RoomID, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rooms[room]
	if !ok {
		return false
	}
	st.locked = true
	st.password = password
	log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room locked")
	return true
}

// Unlock clears the lock and the stored password, so a stale password
// can never leak into a later lock cycle.
func (m *RoomManager) Unlock(room domain.RoomID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rooms[room]
	if !ok {
		return false
	}
	st.locked = false
	st.password = ""
	log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room unlocked")
	return true
}

// CheckPassword is a pure query: it never mutates room state.
func (m *RoomManager) CheckPassword(room domain.RoomID, supplied string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.rooms[room]
	if !ok || st.password != supplied {
		return PasswordKO
	}
	return PasswordOK
}

// Rename updates the first peer record whose display name equals
// oldName and returns its connection id. Display names are not
// guaranteed unique; with duplicates the match is arbitrary.
func (m *RoomManager) Rename(room domain.RoomID, oldName, newName string) (domain.ConnID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rooms[room]
	if !ok {
		return "", false
	}
	for id, peer := range st.peers {
		if peer.Name == oldName {
			peer.Name = newName
			st.peers[id] = peer
			log.Info().Str("module", "app.rooms").Str("room", string(room)).Str("conn", string(id)).Str("name", newName).Msg("peer renamed")
			return id, true
		}
	}
	return "", false
}

// UpdateStatus flips one status flag on the first peer record matching
// peerName. Same first-match policy as Rename.
func (m *RoomManager) UpdateStatus(room domain.RoomID, peerName, element string, status bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.rooms[room]
	if !ok {
		return false
	}
	for id, peer := range st.peers {
		if peer.Name != peerName {
			continue
		}
		switch element {
		case domain.ElementVideo:
			peer.Video = status
		case domain.ElementAudio:
			peer.Audio = status
		case domain.ElementHand:
			peer.Hand = status
		case domain.ElementRec:
			peer.Rec = status
		default:
			return false
		}
		st.peers[id] = peer
		return true
	}
	return false
}

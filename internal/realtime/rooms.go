package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Member is a live connection as seen by a RoomRegistry.
type Member interface {
	ID() string
	UserID() uuid.UUID
	Send(payload []byte) error
	Close(code int, reason string)
}

// RoomRegistry maps room names to the set of members subscribed to them.
// MemoryRooms keeps this in process; a shared pub/sub backed implementation plugs in here.
type RoomRegistry interface {
	Attach(m Member)
	// Detach forgets the member and returns the rooms it was in.
	Detach(memberID string) []string
	// Join returns false when the member is not attached.
	Join(room, memberID string) bool
	Leave(room, memberID string)
	In(room, memberID string) bool
	Members(room string) []string
	// Broadcast delivers payload once per member across rooms, skipping excludeMemberID.
	Broadcast(payload []byte, excludeMemberID string, rooms ...string) int
	Count() int
	// Close closes every member and returns how many there were.
	Close() int
}

func ConversationRoom(conversationID uuid.UUID) string {
	return "conversation:" + conversationID.String()
}

func UserRoom(userID uuid.UUID) string {
	return "user:" + userID.String()
}

type MemoryRooms struct {
	mu          sync.RWMutex
	members     map[string]Member              // memberID -> member
	rooms       map[string]map[string]Member   // room -> memberID -> member
	memberRooms map[string]map[string]struct{} // memberID -> set of rooms
}

func NewMemoryRooms() *MemoryRooms {
	return &MemoryRooms{
		members:     make(map[string]Member),
		rooms:       make(map[string]map[string]Member),
		memberRooms: make(map[string]map[string]struct{}),
	}
}

func (r *MemoryRooms) Attach(m Member) {
	r.mu.Lock()
	r.members[m.ID()] = m
	if r.memberRooms[m.ID()] == nil {
		r.memberRooms[m.ID()] = make(map[string]struct{})
	}
	r.mu.Unlock()
}

func (r *MemoryRooms) Detach(memberID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[memberID]; !ok {
		return nil
	}
	delete(r.members, memberID)

	left := make([]string, 0, len(r.memberRooms[memberID]))
	for room := range r.memberRooms[memberID] {
		left = append(left, room)
		r.leaveLocked(room, memberID)
	}
	delete(r.memberRooms, memberID)

	return left
}

func (r *MemoryRooms) Join(room, memberID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[memberID]
	if !ok {
		return false
	}

	members := r.rooms[room]
	if members == nil {
		members = make(map[string]Member)
		r.rooms[room] = members
	}
	members[memberID] = m
	r.memberRooms[memberID][room] = struct{}{}

	return true
}

func (r *MemoryRooms) Leave(room, memberID string) {
	r.mu.Lock()
	r.leaveLocked(room, memberID)
	r.mu.Unlock()
}

func (r *MemoryRooms) In(room, memberID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[room][memberID]
	return ok
}

func (r *MemoryRooms) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rooms[room]))
	for id := range r.rooms[room] {
		ids = append(ids, id)
	}

	return ids
}

func (r *MemoryRooms) Broadcast(payload []byte, excludeMemberID string, rooms ...string) int {
	r.mu.RLock()
	targets := make(map[string]Member)
	for _, room := range rooms {
		for id, m := range r.rooms[room] {
			if id == excludeMemberID {
				continue
			}
			targets[id] = m
		}
	}
	r.mu.RUnlock()

	// Send may close a slow member, which detaches it; do not hold the lock.
	delivered := 0
	for _, m := range targets {
		if err := m.Send(payload); err == nil {
			delivered++
		}
	}

	return delivered
}

func (r *MemoryRooms) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members)
}

// Close closes every attached member and clears all state.
func (r *MemoryRooms) Close() int {
	r.mu.Lock()
	members := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, m)
	}
	r.members = make(map[string]Member)
	r.rooms = make(map[string]map[string]Member)
	r.memberRooms = make(map[string]map[string]struct{})
	r.mu.Unlock()

	for _, m := range members {
		m.Close(websocket.CloseGoingAway, "server shutdown")
	}

	return len(members)
}

func (r *MemoryRooms) leaveLocked(room, memberID string) {
	members := r.rooms[room]
	if members == nil {
		return
	}
	delete(members, memberID)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
	if joined, ok := r.memberRooms[memberID]; ok {
		delete(joined, room)
	}
}

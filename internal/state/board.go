package state

import (
	"log"
	"sort"
	"sync"
)

// Board is the viewer side of sharing: it keeps the newest snapshot of
// every session it has heard of. Snapshots are whole-sequence values, so
// merging is last-writer-wins on the revision.
type Board struct {
	sessions map[string]Snapshot
	mu       sync.RWMutex
}

func NewBoard() *Board {
	return &Board{
		sessions: make(map[string]Snapshot),
	}
}

// Apply merges snap into the board and returns true if it replaced what
// was there. Older or duplicate revisions are ignored.
func (b *Board) Apply(snap Snapshot) bool {
	if snap.SessionID == "" {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.sessions[snap.SessionID]; ok && cur.Revision >= snap.Revision {
		log.Printf("[BOARD] Ignoring revision %d of %s, have %d", snap.Revision, snap.SessionID, cur.Revision)
		return false
	}

	snap.Strokes = snap.Strokes.Clone()
	b.sessions[snap.SessionID] = snap
	log.Printf("[BOARD] Session %s at revision %d (%d points)", snap.SessionID, snap.Revision, len(snap.Strokes))
	return true
}

// Snapshots returns every held snapshot ordered by session id.
func (b *Board) Snapshots() []Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Snapshot, 0, len(b.sessions))
	for _, snap := range b.sessions {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}

// Clear drops every session, e.g. when the connection to the host is lost.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions = make(map[string]Snapshot)
}

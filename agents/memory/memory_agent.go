// Package memory keeps each user's interaction history: durable rows in
// the store, plus a small in-memory ring for cheap history reads.
package memory

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Conceptual-Machines/moodtunes-agents-go/memorystore"
	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

// recentRingSize caps how much history Recent serves per user.
const recentRingSize = 50

// MemoryAgent wraps the interaction store. The ring map is an
// authoritative cache: a user present in it mirrors the newest rows of
// their file; an absent user is loaded from disk on first read.
type MemoryAgent struct {
	store *memorystore.Store

	mu     sync.Mutex
	recent map[string][]models.Interaction
}

func NewMemoryAgent(store *memorystore.Store) *MemoryAgent {
	log.Printf("📥 MEMORY AGENT INITIALIZED")
	return &MemoryAgent{
		store:  store,
		recent: make(map[string][]models.Interaction),
	}
}

// Store persists one interaction for a user. A zero At gets stamped now.
func (a *MemoryAgent) Store(_ context.Context, userID string, interaction models.Interaction) error {
	if interaction.At.IsZero() {
		interaction.At = time.Now().UTC()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Append(userID, interaction); err != nil {
		return err
	}

	if ring, ok := a.recent[userID]; ok {
		ring = append(ring, interaction)
		if len(ring) > recentRingSize {
			ring = ring[len(ring)-recentRingSize:]
		}
		a.recent[userID] = ring
	}

	log.Printf("📥 MEMORY: stored %s interaction for %s", interaction.Kind, userID)
	return nil
}

// Recent returns up to the newest 50 interactions for a user, newest
// first. The first read per user seeds the ring from disk.
func (a *MemoryAgent) Recent(_ context.Context, userID string) ([]models.Interaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ring, ok := a.recent[userID]
	if !ok {
		stored, err := a.store.List(userID)
		if err != nil {
			return nil, err
		}
		if len(stored) > recentRingSize {
			stored = stored[len(stored)-recentRingSize:]
		}
		ring = append([]models.Interaction(nil), stored...)
		a.recent[userID] = ring
	}

	out := make([]models.Interaction, len(ring))
	for i, interaction := range ring {
		out[len(ring)-1-i] = interaction
	}
	return out, nil
}

// Package memorystore persists per-user interaction history as small JSON
// files, one array per user.
package memorystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
)

// Store reads and writes <dir>/<userID>.json files. Every write rewrites
// the user's whole file; histories stay small enough that this beats
// anything cleverer.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = "memory"
	}
	return &Store{dir: dir}
}

// Append adds one interaction to the end of the user's history file.
func (s *Store) Append(userID string, interaction models.Interaction) error {
	name, err := sanitizeUserID(userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating memory dir %s: %w", s.dir, err)
	}

	interactions := append(s.load(name), interaction)

	data, err := json.Marshal(interactions)
	if err != nil {
		return fmt.Errorf("encoding history for %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing history for %s: %w", name, err)
	}
	return nil
}

// List returns the user's stored history, oldest first. A user with no
// file has an empty history, not an error.
func (s *Store) List(userID string) ([]models.Interaction, error) {
	name, err := sanitizeUserID(userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(name), nil
}

// load reads a user's file under the lock. Missing and corrupt files both
// start a fresh history.
func (s *Store) load(name string) []models.Interaction {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️  Could not read history for %s, starting fresh: %v", name, err)
		}
		return []models.Interaction{}
	}

	var interactions []models.Interaction
	if err := json.Unmarshal(data, &interactions); err != nil {
		log.Printf("⚠️  History for %s is corrupt, starting fresh: %v", name, err)
		return []models.Interaction{}
	}
	return interactions
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// sanitizeUserID keeps only characters safe in a filename, so a crafted
// ID cannot escape the store directory.
func sanitizeUserID(userID string) (string, error) {
	var b strings.Builder
	for _, r := range userID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteByte(byte(r))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("user ID is required")
	}
	return b.String(), nil
}

package store

import (
	"encoding/gob"
	"fmt"
	"os"
	"sync"

	"github.com/kass/geocell-index/pkg/geocell"
)

// MemoryStore holds places in a guarded in-memory map keyed by place id,
// indexed additionally by cell id for Query. It is the store the CLI and
// demo use.
type MemoryStore struct {
	mu        sync.RWMutex
	places    map[string]Place
	byCell    map[string][]string // cell id -> place ids touching it
	itemCount int64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		places: make(map[string]Place),
		byCell: make(map[string][]string),
	}
}

// Insert adds or replaces a place.
func (m *MemoryStore) Insert(p Place) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.places[p.PlaceID]; !exists {
		m.itemCount++
	}
	m.places[p.PlaceID] = p
	for _, c := range p.Cells {
		m.byCell[c] = append(m.byCell[c], p.PlaceID)
	}
}

// InsertAll adds a batch of places.
func (m *MemoryStore) InsertAll(places []Place) {
	for _, p := range places {
		m.Insert(p)
	}
}

// Count returns the number of distinct places held.
func (m *MemoryStore) Count() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.itemCount
}

// Clear empties the store.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.places = make(map[string]Place)
	m.byCell = make(map[string][]string)
	m.itemCount = 0
}

// All returns every place held by the store, in no particular order. It is
// meant for building an independent verification index (see pkg/oracle),
// not for serving queries.
func (m *MemoryStore) All() []Place {
	m.mu.RLock()
	defer m.mu.RUnlock()

	places := make([]Place, 0, len(m.places))
	for _, p := range m.places {
		places = append(places, p)
	}
	return places
}

// Query implements geocell.QueryRunner over the in-memory index.
func (m *MemoryStore) Query(cells []string) ([]geocell.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var results []geocell.Entity
	for _, c := range cells {
		for _, id := range m.byCell[c] {
			if seen[id] {
				continue
			}
			seen[id] = true
			results = append(results, m.places[id])
		}
	}
	return results, nil
}

// indexSnapshot is the serializable form of a MemoryStore, analogous to
// rtree.IndexData: the places and their count are persisted, not byCell;
// LoadFromFile reinserts the places, which rebuilds byCell and the count.
type indexSnapshot struct {
	Places []Place
	Count  int64
}

// SaveToFile persists the store to a gob-encoded binary file.
func (m *MemoryStore) SaveToFile(filename string) error {
	m.mu.RLock()
	places := make([]Place, 0, len(m.places))
	for _, p := range m.places {
		places = append(places, p)
	}
	count := m.itemCount
	m.mu.RUnlock()

	snapshot := indexSnapshot{Places: places, Count: count}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	return nil
}

// LoadFromFile replaces the store's contents with a previously saved
// snapshot.
func (m *MemoryStore) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var snapshot indexSnapshot
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&snapshot); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}

	m.Clear()
	m.InsertAll(snapshot.Places)

	return nil
}

package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kass/geocell-index/pkg/geocell"
)

func TestMemoryStoreQueryFindsInsertedPlace(t *testing.T) {
	m := NewMemoryStore()
	p, _ := geocell.NewPoint(40.7410, -73.9896)
	place := NewPlace("1", "Flatiron", p)
	m.Insert(place)

	results, err := m.Query(place.Cells)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID())
}

func TestMemoryStoreQueryDedupsAcrossMatchingCells(t *testing.T) {
	m := NewMemoryStore()
	p, _ := geocell.NewPoint(40.7410, -73.9896)
	place := NewPlace("1", "Flatiron", p)
	m.Insert(place)

	results, err := m.Query(place.Cells) // every ancestor cell matches the same place
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMemoryStoreInsertIsIdempotentForCount(t *testing.T) {
	m := NewMemoryStore()
	p, _ := geocell.NewPoint(0, 0)
	place := NewPlace("1", "origin", p)

	m.Insert(place)
	m.Insert(place)
	assert.Equal(t, int64(1), m.Count())
}

func TestMemoryStoreClear(t *testing.T) {
	m := NewMemoryStore()
	p, _ := geocell.NewPoint(0, 0)
	m.Insert(NewPlace("1", "origin", p))
	m.Clear()

	assert.Equal(t, int64(0), m.Count())
	results, err := m.Query([]string{"0"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryStoreAllReturnsEveryPlace(t *testing.T) {
	m := NewMemoryStore()
	p1, _ := geocell.NewPoint(40.7410, -73.9896)
	p2, _ := geocell.NewPoint(51.5074, -0.1278)
	m.InsertAll([]Place{
		NewPlace("1", "Flatiron", p1),
		NewPlace("2", "Big Ben", p2),
	})

	all := m.All()
	require.Len(t, all, 2)
	ids := []string{all[0].PlaceID, all[1].PlaceID}
	assert.ElementsMatch(t, []string{"1", "2"}, ids)
}

func TestMemoryStoreSaveAndLoadRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	p1, _ := geocell.NewPoint(40.7410, -73.9896)
	p2, _ := geocell.NewPoint(51.5074, -0.1278)
	m.InsertAll([]Place{
		NewPlace("1", "Flatiron", p1),
		NewPlace("2", "Big Ben", p2),
	})

	f, err := os.CreateTemp(t.TempDir(), "memstore-*.gob")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, m.SaveToFile(f.Name()))

	loaded := NewMemoryStore()
	require.NoError(t, loaded.LoadFromFile(f.Name()))
	assert.Equal(t, int64(2), loaded.Count())

	results, err := loaded.Query(geocell.GenerateCells(p1))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID())
}

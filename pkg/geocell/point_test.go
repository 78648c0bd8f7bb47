package geocell

import (
	"bytes"
	"encoding/gob"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPointValid(t *testing.T) {
	p, err := NewPoint(37.7749, -122.4194)
	require.NoError(t, err)
	assert.Equal(t, 37.7749, p.Lat())
	assert.Equal(t, -122.4194, p.Lon())
}

func TestNewPointRejectsOutOfRangeLatitude(t *testing.T) {
	_, err := NewPoint(90.1, 0)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, err = NewPoint(-91, 0)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))
}

func TestNewPointRejectsOutOfRangeLongitude(t *testing.T) {
	_, err := NewPoint(0, 180.1)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, err = NewPoint(0, -181)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))
}

func TestPointEqual(t *testing.T) {
	a, _ := NewPoint(1, 2)
	b, _ := NewPoint(1, 2)
	c, _ := NewPoint(1, 3)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestPointString(t *testing.T) {
	p, _ := NewPoint(1.5, -2.5)
	assert.Equal(t, "(1.5, -2.5)", p.String())
}

func TestNewBoxCanonicalizesLatitudesWithoutSwappingLongitude(t *testing.T) {
	b, err := NewBox(10, 5, 20, -5)
	require.NoError(t, err)
	assert.Equal(t, 20.0, b.North())
	assert.Equal(t, 10.0, b.South())
	assert.Equal(t, 5.0, b.East())
	assert.Equal(t, -5.0, b.West())
}

func TestNewBoxAllowsEastLessThanWest(t *testing.T) {
	// antimeridian-spanning band; the core does not act on it, but
	// construction must not reject it.
	b, err := NewBox(10, -170, -10, 170)
	require.NoError(t, err)
	assert.Equal(t, -170.0, b.East())
	assert.Equal(t, 170.0, b.West())
}

func TestNewBoxRejectsOutOfRangeCoordinates(t *testing.T) {
	_, err := NewBox(91, 0, 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))

	_, err = NewBox(0, 0, 0, 200)
	assert.True(t, errors.Is(err, ErrInvalidCoordinate))
}

func TestBoxSetNorthRejectsBelowSouth(t *testing.T) {
	b, _ := NewBox(10, 0, 0, 0)
	err := b.SetNorth(-1)
	assert.True(t, errors.Is(err, ErrInvalidBoxEdit))
	assert.Equal(t, 10.0, b.North())
}

func TestBoxSetSouthRejectsAboveNorth(t *testing.T) {
	b, _ := NewBox(10, 0, 0, 0)
	err := b.SetSouth(11)
	assert.True(t, errors.Is(err, ErrInvalidBoxEdit))
	assert.Equal(t, 0.0, b.South())
}

func TestPointGobRoundTrip(t *testing.T) {
	p, _ := NewPoint(37.7749, -122.4194)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(p))

	var decoded Point
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))
	assert.True(t, p.Equal(decoded))
}

func TestBoxEqualByCorners(t *testing.T) {
	a, _ := NewBox(10, 5, 0, -5)
	b, _ := NewBox(10, 5, 0, -5)
	c, _ := NewBox(10, 5, 1, -5)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

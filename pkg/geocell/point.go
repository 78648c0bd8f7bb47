// Package geocell implements a 16-way hierarchical geospatial grid over
// latitude/longitude, the great-circle distance between points on it, and
// an iterative nearest-neighbor search that expands outward from a center
// cell until a lower-bound argument proves no closer result remains.
//
// The package is pure: no I/O, no shared mutable state, no goroutines.
// Callers own the datastore; ProximityFetch and the bounding-box helpers
// only need a callback that turns a set of cell ids into candidate
// entities.
package geocell

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidCoordinate is returned when a latitude or longitude falls
// outside its valid range at Point construction.
var ErrInvalidCoordinate = errors.New("geocell: invalid coordinate")

// ErrInvalidBoxEdit is returned when a Box mutation would leave south > north.
var ErrInvalidBoxEdit = errors.New("geocell: invalid box edit")

// Point is an immutable latitude/longitude pair.
type Point struct {
	lat, lon float64
}

// NewPoint validates and constructs a Point. lat must be in [-90, 90] and
// lon must be in [-180, 180].
func NewPoint(lat, lon float64) (Point, error) {
	if lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return Point{}, fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, lon)
	}
	return Point{lat: lat, lon: lon}, nil
}

// mustPoint constructs a Point without validation, for internal geometry
// where the coordinates are already known to be in range (box corners,
// edge projections derived from an existing valid Point).
func mustPoint(lat, lon float64) Point {
	return Point{lat: lat, lon: lon}
}

// Lat returns the point's latitude in degrees.
func (p Point) Lat() float64 { return p.lat }

// Lon returns the point's longitude in degrees.
func (p Point) Lon() float64 { return p.lon }

// Equal reports whether two points have identical coordinates.
func (p Point) Equal(o Point) bool {
	return p.lat == o.lat && p.lon == o.lon
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.lat, p.lon)
}

// GobEncode implements gob.GobEncoder so Point can round-trip through
// encoding/gob despite its fields being unexported.
func (p Point) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, p.lat); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, p.lon); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder, the inverse of GobEncode.
func (p *Point) GobDecode(data []byte) error {
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.BigEndian, &p.lat); err != nil {
		return err
	}
	return binary.Read(buf, binary.BigEndian, &p.lon)
}

// Box is an axis-aligned rectangle. East may be less than West to denote a
// band that crosses the antimeridian; the core does not act on that case
// (see package geocell's proximity and bbox non-goals), it is preserved
// purely as a constructible value.
type Box struct {
	north, east, south, west float64
}

// NewBox canonicalizes (south, north) so that south <= north and validates
// that both latitudes and both longitudes are in range. East and west are
// not reordered.
func NewBox(north, east, south, west float64) (Box, error) {
	if south > north {
		south, north = north, south
	}
	if north < -90 || north > 90 || south < -90 || south > 90 {
		return Box{}, fmt.Errorf("%w: latitude out of range", ErrInvalidCoordinate)
	}
	if east < -180 || east > 180 || west < -180 || west > 180 {
		return Box{}, fmt.Errorf("%w: longitude out of range", ErrInvalidCoordinate)
	}
	return Box{north: north, east: east, south: south, west: west}, nil
}

func mustBox(north, east, south, west float64) Box {
	return Box{north: north, east: east, south: south, west: west}
}

// North returns the box's northern latitude edge.
func (b Box) North() float64 { return b.north }

// East returns the box's eastern longitude edge.
func (b Box) East() float64 { return b.east }

// South returns the box's southern latitude edge.
func (b Box) South() float64 { return b.south }

// West returns the box's western longitude edge.
func (b Box) West() float64 { return b.west }

// NorthEast returns the box's northeast corner as a Point.
func (b Box) NorthEast() Point { return mustPoint(b.north, b.east) }

// SouthWest returns the box's southwest corner as a Point.
func (b Box) SouthWest() Point { return mustPoint(b.south, b.west) }

// SetNorth replaces the northern edge, failing ErrInvalidBoxEdit if it
// would put north below the current south.
func (b *Box) SetNorth(north float64) error {
	if north < b.south {
		return fmt.Errorf("%w: north %v below south %v", ErrInvalidBoxEdit, north, b.south)
	}
	b.north = north
	return nil
}

// SetSouth replaces the southern edge, failing ErrInvalidBoxEdit if it
// would put south above the current north.
func (b *Box) SetSouth(south float64) error {
	if south > b.north {
		return fmt.Errorf("%w: south %v above north %v", ErrInvalidBoxEdit, south, b.north)
	}
	b.south = south
	return nil
}

// Equal reports whether two boxes have identical corners.
func (b Box) Equal(o Box) bool {
	return b.north == o.north && b.east == o.east && b.south == o.south && b.west == o.west
}

func (b Box) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", b.north, b.east, b.south, b.west)
}

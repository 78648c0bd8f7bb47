// Package store provides datastores that answer geocell.QueryRunner lookups:
// given a set of candidate cell ids, return the entities whose cell list
// intersects it.
package store

import "github.com/kass/geocell-index/pkg/geocell"

// Place is the concrete entity every store in this package persists and
// returns. It implements geocell.Entity.
type Place struct {
	PlaceID string
	Name    string
	Point   geocell.Point
	Cells   []string
}

func (p Place) ID() any                  { return p.PlaceID }
func (p Place) Location() geocell.Point { return p.Point }

// NewPlace builds a Place and precomputes its full-resolution cell ancestry,
// the way a row must be prepared before insertion into any store below.
func NewPlace(id, name string, p geocell.Point) Place {
	return Place{
		PlaceID: id,
		Name:    name,
		Point:   p,
		Cells:   geocell.GenerateCells(p),
	}
}

// Package warehouse declares scene objects that hold stock.
package warehouse

import (
	"view-generator/store"
	"view-generator/viewrt"
)

// Location is a position inside the warehouse.
type Location struct {
	Aisle int32
	Bin   int32
}

// Shelf is a placed object; other objects refer to it by handle.
//
//viewgen:root
type Shelf struct {
	viewrt.Object

	Label     string
	Capacity  int32
	Neighbour *Shelf
	Stock     []store.Product
	Bounds    viewrt.Bounds
}

// Bay groups shelves at one location.
//
//viewgen:root
type Bay struct {
	Location

	Shelves []*Shelf
	Orders  []*store.Order `serialize:"ref"`
}

// Package store declares the persisted data of a shop: products, orders
// and the customers placing them.
package store

import (
	"time"

	"view-generator/viewrt"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus uint8

const (
	StatusPending OrderStatus = iota
	StatusPaid
	StatusShipped
	StatusCancelled
)

// Product represents an individual item available for sale.
// PriceCents holds the lowest currency unit to avoid floating-point errors.
type Product struct {
	ID         int64
	SKU        string
	Name       string
	PriceCents int64
	Inventory  int
	Tags       []string
	Dimensions viewrt.Vector3

	supplier string
	cost     int64 `serialize:"value"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64
	Email    string
	FullName string
	IsActive bool
}

// Tagged attaches labels to a value.
type Tagged[T any] struct {
	Value T
	Tags  []string
}

// Order represents a transaction made by a customer.
//
//viewgen:root
type Order struct {
	ID         int64
	Status     OrderStatus
	Items      []OrderItem
	Customer   *Customer `serialize:"ref"`
	Notes      [4]string
	Discount   Tagged[int32]
	Totals     map[string]int64
	OrderedAt  time.Time
	draftCache *OrderItem
	Preview    *OrderItem `view:"-"`
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	Product   Product `view:"nested"`
	Quantity  int
	UnitPrice int64
	Bundle    []OrderItem
}

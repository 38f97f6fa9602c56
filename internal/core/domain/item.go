package domain

import (
	"fmt"
	"time"
)

// StockItem is the capability set a keyed store needs from a record:
// an immutable id, a display name and a mutable quantity.
type StockItem interface {
	ID() int
	Name() string
	Quantity() int
	SetQuantity(quantity int)
}

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryGroceries   Category = "groceries"
)

type ElectronicItem struct {
	id             int
	name           string
	quantity       int
	Brand          string
	WarrantyMonths int
}

func NewElectronicItem(id int, name string, quantity int, brand string, warrantyMonths int) *ElectronicItem {
	return &ElectronicItem{
		id:             id,
		name:           name,
		quantity:       quantity,
		Brand:          brand,
		WarrantyMonths: warrantyMonths,
	}
}

func (e *ElectronicItem) ID() int                  { return e.id }
func (e *ElectronicItem) Name() string             { return e.name }
func (e *ElectronicItem) Quantity() int            { return e.quantity }
func (e *ElectronicItem) SetQuantity(quantity int) { e.quantity = quantity }

func (e *ElectronicItem) String() string {
	return fmt.Sprintf("[Electronics] %s (ID: %d) - %d in stock, Brand: %s, Warranty: %d months",
		e.name, e.id, e.quantity, e.Brand, e.WarrantyMonths)
}

type GroceryItem struct {
	id         int
	name       string
	quantity   int
	ExpiryDate time.Time
}

func NewGroceryItem(id int, name string, quantity int, expiryDate time.Time) *GroceryItem {
	return &GroceryItem{
		id:         id,
		name:       name,
		quantity:   quantity,
		ExpiryDate: expiryDate,
	}
}

func (g *GroceryItem) ID() int                  { return g.id }
func (g *GroceryItem) Name() string             { return g.name }
func (g *GroceryItem) Quantity() int            { return g.quantity }
func (g *GroceryItem) SetQuantity(quantity int) { g.quantity = quantity }

func (g *GroceryItem) String() string {
	return fmt.Sprintf("[Grocery] %s (ID: %d) - %d in stock, Expires: %s",
		g.name, g.id, g.quantity, g.ExpiryDate.Format(time.DateOnly))
}

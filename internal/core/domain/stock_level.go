package domain

import "time"

// StockLevel is the snapshot of one item's quantity pushed to the stock mirror.
// Version orders snapshots of the same item; a mirror keeps the highest.
type StockLevel struct {
	Category  Category
	ItemID    int
	Name      string
	Quantity  int
	Version   int64
	UpdatedAt time.Time
}

// NewStockLevel builds a snapshot from values observed under the store lock.
// Versions are clock microseconds, so UpdatedAt is derived from them.
func NewStockLevel(category Category, item StockItem, quantity int, version int64) StockLevel {
	return StockLevel{
		Category:  category,
		ItemID:    item.ID(),
		Name:      item.Name(),
		Quantity:  quantity,
		Version:   version,
		UpdatedAt: time.UnixMicro(version),
	}
}

package port

import (
	"context"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

type StockMirror interface {
	// SetStock publishes a quantity for an item unless the mirror already
	// holds the same or a newer version of it
	SetStock(ctx context.Context, level domain.StockLevel) error

	// DeleteStock drops an item removed at the given version; later SetStock
	// calls carrying an older version are ignored
	DeleteStock(ctx context.Context, category domain.Category, itemID int, version int64) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/store"
	"github.com/rl1809/desk-suite/internal/port"
)

// Warehouse keeps one keyed store per item variant and mirrors every
// successful mutation to the configured StockMirror.
type Warehouse struct {
	electronics *store.Keyed[*domain.ElectronicItem]
	groceries   *store.Keyed[*domain.GroceryItem]
	mirror      port.StockMirror
	logger      *zap.Logger
	now         func() time.Time
}

func NewWarehouse(mirror port.StockMirror, logger *zap.Logger) *Warehouse {
	return newWarehouse(mirror, logger, time.Now)
}

func newWarehouse(mirror port.StockMirror, logger *zap.Logger, now func() time.Time) *Warehouse {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mirror == nil {
		mirror = nopMirror{}
	}
	return &Warehouse{
		electronics: store.NewKeyedWithClock[*domain.ElectronicItem](now),
		groceries:   store.NewKeyedWithClock[*domain.GroceryItem](now),
		mirror:      mirror,
		logger:      logger,
		now:         now,
	}
}

// Seed loads the fixed sample inventory. Failures are collected, never fatal.
func (w *Warehouse) Seed(ctx context.Context) []error {
	now := w.now()
	var errs []error

	for _, item := range []*domain.ElectronicItem{
		domain.NewElectronicItem(1, "Smart TV", 5, "Samsung", 24),
		domain.NewElectronicItem(2, "Laptop", 10, "Dell", 12),
	} {
		if err := w.AddElectronic(ctx, item); err != nil {
			errs = append(errs, err)
		}
	}

	for _, item := range []*domain.GroceryItem{
		domain.NewGroceryItem(1, "Milk", 20, now.AddDate(0, 0, 10)),
		domain.NewGroceryItem(2, "Bread", 30, now.AddDate(0, 0, 3)),
	} {
		if err := w.AddGrocery(ctx, item); err != nil {
			errs = append(errs, err)
		}
	}

	w.logger.Debug("warehouse seeded", zap.Int("failures", len(errs)))
	return errs
}

func (w *Warehouse) AddElectronic(ctx context.Context, item *domain.ElectronicItem) error {
	level, err := insert(w.electronics, domain.CategoryElectronics, item)
	if err != nil {
		return err
	}
	w.publish(ctx, level)
	return nil
}

func (w *Warehouse) AddGrocery(ctx context.Context, item *domain.GroceryItem) error {
	level, err := insert(w.groceries, domain.CategoryGroceries, item)
	if err != nil {
		return err
	}
	w.publish(ctx, level)
	return nil
}

// IncreaseStock adds delta to the current quantity of an item and returns the
// resulting level. A delta that would take the quantity below zero fails with
// store.ErrInvalidQuantity and a missing id with store.ErrNotFound.
func (w *Warehouse) IncreaseStock(ctx context.Context, category domain.Category, id, delta int) (domain.StockLevel, error) {
	var (
		level domain.StockLevel
		err   error
	)
	switch category {
	case domain.CategoryElectronics:
		level, err = adjust(w.electronics, category, id, delta)
	case domain.CategoryGroceries:
		level, err = adjust(w.groceries, category, id, delta)
	default:
		return domain.StockLevel{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err != nil {
		return domain.StockLevel{}, err
	}

	w.publish(ctx, level)
	return level, nil
}

func (w *Warehouse) Remove(ctx context.Context, category domain.Category, id int) error {
	var (
		version int64
		err     error
	)
	switch category {
	case domain.CategoryElectronics:
		version, err = remove(w.electronics, id)
	case domain.CategoryGroceries:
		version, err = remove(w.groceries, id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if err != nil {
		return err
	}

	if err := w.mirror.DeleteStock(ctx, category, id, version); err != nil {
		w.logger.Warn("stock mirror delete failed",
			zap.String("category", string(category)), zap.Int("item_id", id), zap.Error(err))
	}
	return nil
}

// Items lists one category in insertion order.
func (w *Warehouse) Items(category domain.Category) ([]domain.StockItem, error) {
	switch category {
	case domain.CategoryElectronics:
		return asStockItems(w.electronics.ListAll()), nil
	case domain.CategoryGroceries:
		return asStockItems(w.groceries.ListAll()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

func (w *Warehouse) publish(ctx context.Context, level domain.StockLevel) {
	if err := w.mirror.SetStock(ctx, level); err != nil {
		w.logger.Warn("stock mirror update failed",
			zap.String("category", string(level.Category)), zap.Int("item_id", level.ItemID), zap.Error(err))
	}
}

// insert rejects negative opening quantities before handing the item to the store.
func insert[T domain.StockItem](s *store.Keyed[T], category domain.Category, item T) (domain.StockLevel, error) {
	if item.Quantity() < 0 {
		return domain.StockLevel{}, fmt.Errorf("%w: got %d", store.ErrInvalidQuantity, item.Quantity())
	}
	change, err := s.InsertChange(item)
	if err != nil {
		return domain.StockLevel{}, err
	}
	return domain.NewStockLevel(category, change.Item, change.Quantity, change.Version), nil
}

func adjust[T domain.StockItem](s *store.Keyed[T], category domain.Category, id, delta int) (domain.StockLevel, error) {
	change, err := s.Adjust(id, delta)
	if err != nil {
		return domain.StockLevel{}, err
	}
	return domain.NewStockLevel(category, change.Item, change.Quantity, change.Version), nil
}

func remove[T domain.StockItem](s *store.Keyed[T], id int) (int64, error) {
	change, err := s.RemoveChange(id)
	if err != nil {
		return 0, err
	}
	return change.Version, nil
}

func asStockItems[T domain.StockItem](items []T) []domain.StockItem {
	out := make([]domain.StockItem, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

type nopMirror struct{}

func (nopMirror) SetStock(context.Context, domain.StockLevel) error              { return nil }
func (nopMirror) DeleteStock(context.Context, domain.Category, int, int64) error { return nil }

package store

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func milk() *domain.GroceryItem {
	return domain.NewGroceryItem(1, "Milk", 20, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
}

func TestKeyed_InsertAndGet(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()

	require.NoError(t, s.Insert(milk()))

	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name())
	assert.Equal(t, 20, got.Quantity())
	assert.Equal(t, 1, s.Len())
}

func TestKeyed_InsertDuplicate(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	first := milk()
	require.NoError(t, s.Insert(first))

	err := s.Insert(domain.NewGroceryItem(1, "Bread", 30, time.Now()))
	require.ErrorIs(t, err, ErrDuplicateKey)

	assert.Equal(t, 1, s.Len())
	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestKeyed_MissingID(t *testing.T) {
	s := NewKeyed[*domain.ElectronicItem]()

	_, err := s.GetByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Remove(42), ErrNotFound)
	assert.ErrorIs(t, s.UpdateQuantity(42, 3), ErrNotFound)
}

func TestKeyed_UpdateQuantity(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	require.NoError(t, s.UpdateQuantity(1, 15))

	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity())
}

func TestKeyed_UpdateQuantityZeroAllowed(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	require.NoError(t, s.UpdateQuantity(1, 0))
	got, _ := s.GetByID(1)
	assert.Equal(t, 0, got.Quantity())
}

func TestKeyed_NegativeQuantityCheckedFirst(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	for _, q := range []int{-1, -20, -1 << 20} {
		// existing id
		err := s.UpdateQuantity(1, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.NotErrorIs(t, err, ErrNotFound)

		// missing id still reports the quantity problem
		err = s.UpdateQuantity(99, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.NotErrorIs(t, err, ErrNotFound)
	}

	got, _ := s.GetByID(1)
	assert.Equal(t, 20, got.Quantity())
}

func TestKeyed_RemoveIsFinal(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	require.NoError(t, s.Remove(1))
	assert.Equal(t, 0, s.Len())

	_, err := s.GetByID(1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Remove(1), ErrNotFound)

	// the id is free again
	require.NoError(t, s.Insert(milk()))
}

func TestKeyed_ListAll(t *testing.T) {
	s := NewKeyed[*domain.ElectronicItem]()
	want := []*domain.ElectronicItem{
		domain.NewElectronicItem(3, "Router", 4, "TP-Link", 6),
		domain.NewElectronicItem(1, "Smart TV", 5, "Samsung", 24),
		domain.NewElectronicItem(2, "Laptop", 10, "Dell", 12),
	}
	for _, item := range want {
		require.NoError(t, s.Insert(item))
	}

	all := s.ListAll()
	require.Len(t, all, len(want))
	for i, item := range all {
		assert.Equal(t, want[i].ID(), item.ID(), "insertion order")

		got, err := s.GetByID(item.ID())
		require.NoError(t, err)
		assert.Equal(t, item.Name(), got.Name())
		assert.Equal(t, item.Quantity(), got.Quantity())
		assert.Equal(t, item.Brand, got.Brand)
	}

	require.NoError(t, s.Remove(1))
	ids := []int{}
	for _, item := range s.ListAll() {
		ids = append(ids, item.ID())
	}
	assert.Equal(t, []int{3, 2}, ids)
}

func TestKeyed_ListAllIsSnapshot(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	snap := s.ListAll()
	snap[0] = nil

	again := s.ListAll()
	require.Len(t, again, 1)
	assert.NotNil(t, again[0])
}

func TestKeyed_ConcurrentInsertKeepsKeysUnique(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	const workers = 50

	var inserted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// ten ids shared by fifty writers
			if err := s.Insert(domain.NewGroceryItem(n%10, "Item", n, time.Now())); err == nil {
				inserted.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(10), inserted.Load())
	assert.Equal(t, 10, s.Len())
	assert.Len(t, s.ListAll(), 10)
}

func TestKeyed_ConcurrentUpdates(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_ = s.UpdateQuantity(1, q)
			_, _ = s.GetByID(1)
		}(i)
	}
	wg.Wait()

	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Quantity(), 0)
	assert.Less(t, got.Quantity(), 100)
}

func TestKeyed_Adjust(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	change, err := s.Adjust(1, 5)
	require.NoError(t, err)
	assert.Equal(t, 25, change.Quantity)
	assert.Equal(t, 25, change.Item.Quantity())

	_, err = s.Adjust(1, -26)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	got, _ := s.GetByID(1)
	assert.Equal(t, 25, got.Quantity())

	_, err = s.Adjust(7, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyed_VersionsStrictlyIncrease(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewKeyedWithClock[*domain.GroceryItem](func() time.Time { return frozen })

	inserted, err := s.InsertChange(milk())
	require.NoError(t, err)
	assert.Equal(t, frozen.UnixMicro(), inserted.Version)
	assert.Equal(t, 20, inserted.Quantity)

	adjusted, err := s.Adjust(1, 1)
	require.NoError(t, err)
	assert.Equal(t, inserted.Version+1, adjusted.Version)

	require.NoError(t, s.UpdateQuantity(1, 3))
	removed, err := s.RemoveChange(1)
	require.NoError(t, err)
	assert.Equal(t, inserted.Version+3, removed.Version)
	assert.Equal(t, "Milk", removed.Item.Name())

	_, err = s.RemoveChange(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyed_VersionsFollowClock(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewKeyedWithClock[*domain.GroceryItem](func() time.Time { return at })

	first, err := s.InsertChange(milk())
	require.NoError(t, err)

	at = at.Add(time.Second)
	second, err := s.Adjust(1, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Version+time.Second.Microseconds(), second.Version)
}

func TestKeyed_ConcurrentAdjustVersionsAreUnique(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		versions = make(map[int64]int)
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 10; n++ {
				change, err := s.Adjust(1, 1)
				if err != nil {
					continue
				}
				mu.Lock()
				versions[change.Version] = change.Quantity
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, versions, 200)
	// a higher version always carries a higher quantity
	var prevV int64
	prevQ := 0
	for _, v := range sortedKeys(versions) {
		assert.Greater(t, v, prevV)
		assert.Greater(t, versions[v], prevQ)
		prevV, prevQ = v, versions[v]
	}
}

func sortedKeys(m map[int64]int) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func TestKeyed_ConcurrentAdjustLosesNoUpdates(t *testing.T) {
	s := NewKeyed[*domain.GroceryItem]()
	require.NoError(t, s.Insert(milk()))

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 25; n++ {
				_, _ = s.Adjust(1, 1)
			}
		}()
	}
	wg.Wait()

	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 20+40*25, got.Quantity())
}

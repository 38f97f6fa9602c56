package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/desk-suite/internal/adapter/storage"
	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/service"
	"github.com/rl1809/desk-suite/internal/core/store"
	"github.com/rl1809/desk-suite/internal/logging"
	"github.com/rl1809/desk-suite/internal/port"
)

const (
	totalWorkers = 60
	idSpace      = 20
	increments   = 10
)

func main() {
	ctx := context.Background()

	logger, err := logging.New("info", "console", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Mirror to Redis when REDIS_ADDR is set
	var (
		mirror port.StockMirror
		redisM *storage.RedisAdapter
	)
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect redis", zap.String("addr", addr), zap.Error(err))
		}
		defer rdb.Close()
		for id := 1; id <= idSpace; id++ {
			key := fmt.Sprintf("stock:%s:%d", domain.CategoryElectronics, id)
			rdb.Del(ctx, key, key+":removed")
		}
		redisM = storage.NewRedisAdapter(rdb)
		mirror = redisM
	}

	warehouse := service.NewWarehouse(mirror, logger)

	var (
		inserted   atomic.Int32
		duplicates atomic.Int32
		rejected   atomic.Int32
		wg         sync.WaitGroup
	)
	start := time.Now()

	// Phase 1: every id is claimed by several workers at once
	for i := 0; i < totalWorkers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			id := worker%idSpace + 1
			item := domain.NewElectronicItem(id, fmt.Sprintf("item-%d", id), 0, "stress", 12)
			err := warehouse.AddElectronic(ctx, item)
			switch {
			case err == nil:
				inserted.Add(1)
			case errors.Is(err, store.ErrDuplicateKey):
				duplicates.Add(1)
			default:
				logger.Error("unexpected insert error", zap.Int("worker", worker), zap.Error(err))
			}
		}(i)
	}
	wg.Wait()

	// Phase 2: concurrent increments plus decrements that must be refused
	for i := 0; i < totalWorkers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			id := worker%idSpace + 1
			for n := 0; n < increments; n++ {
				if _, err := warehouse.IncreaseStock(ctx, domain.CategoryElectronics, id, 1); err != nil {
					logger.Error("unexpected increase error", zap.Int("worker", worker), zap.Error(err))
				}
				if _, err := warehouse.IncreaseStock(ctx, domain.CategoryElectronics, id, -1000); errors.Is(err, store.ErrInvalidQuantity) {
					rejected.Add(1)
				}
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	items, _ := warehouse.Items(domain.CategoryElectronics)
	perID := totalWorkers / idSpace * increments

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Workers:          %d\n", totalWorkers)
	fmt.Printf("Distinct IDs:     %d\n", idSpace)
	fmt.Printf("Inserted:         %d\n", inserted.Load())
	fmt.Printf("Duplicates:       %d\n", duplicates.Load())
	fmt.Printf("Refused updates:  %d\n", rejected.Load())
	fmt.Printf("Stored items:     %d\n", len(items))
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	failed := false
	if inserted.Load() == idSpace && duplicates.Load() == totalWorkers-idSpace && len(items) == idSpace {
		fmt.Printf("PASS: exactly one item per id (%d stored, %d duplicates refused)\n", idSpace, totalWorkers-idSpace)
	} else {
		fmt.Printf("FAIL: expected %d inserts and %d duplicates, got %d/%d with %d stored\n",
			idSpace, totalWorkers-idSpace, inserted.Load(), duplicates.Load(), len(items))
		failed = true
	}

	wrong := 0
	for _, item := range items {
		if item.Quantity() != perID {
			wrong++
		}
	}
	if wrong == 0 && rejected.Load() == totalWorkers*increments {
		fmt.Printf("PASS: every item has quantity %d and no negative update landed\n", perID)
	} else {
		fmt.Printf("FAIL: %d items off the expected quantity %d, %d of %d negative updates refused\n",
			wrong, perID, rejected.Load(), totalWorkers*increments)
		failed = true
	}

	if redisM != nil {
		mismatched := 0
		for _, item := range items {
			level, ok, err := redisM.Stock(ctx, domain.CategoryElectronics, item.ID())
			if err != nil || !ok || level.Quantity != perID {
				mismatched++
			}
		}
		if mismatched == 0 {
			fmt.Println("PASS: Redis mirror matches the store")
		} else {
			fmt.Printf("FAIL: %d mirrored levels differ from the store\n", mismatched)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

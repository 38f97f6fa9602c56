package main

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rl1809/desk-suite/internal/adapter/storage"
	"github.com/rl1809/desk-suite/internal/config"
	"github.com/rl1809/desk-suite/internal/port"
)

const connectTimeout = 3 * time.Second

// openStockMirror connects the Redis mirror when an address is configured.
// An unreachable server disables mirroring for the session instead of
// failing the program.
func openStockMirror(ctx context.Context, cfg config.MirrorConfig, logger *zap.Logger) (port.StockMirror, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, stock mirror disabled",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		rdb.Close()
		return nil, func() {}
	}

	logger.Info("stock mirror connected", zap.String("addr", cfg.RedisAddr))
	return storage.NewRedisAdapter(rdb), func() { rdb.Close() }
}

// openLedger returns the configured transaction ledger. SQL ledgers get their
// schema created on first use. The driver must be one config.Validate accepts.
func openLedger(ctx context.Context, cfg config.LedgerConfig, logger *zap.Logger) (port.LedgerRepository, func(), error) {
	switch cfg.Driver {
	case config.LedgerMemory:
		return storage.NewMemoryLedger(), func() {}, nil
	case config.LedgerMySQL, config.LedgerSQLite:
	default:
		return nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.Driver)
	}

	openCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := storage.OpenLedgerDB(openCtx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	ledger := storage.NewSQLLedger(db)
	if err := ledger.EnsureSchema(openCtx); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("ledger connected", zap.String("driver", cfg.Driver))
	return ledger, func() { db.Close() }, nil
}

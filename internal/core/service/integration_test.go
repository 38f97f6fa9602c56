package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/rl1809/desk-suite/internal/adapter/storage"
	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/store"
)

func setupRedisMirror(t *testing.T) (*redis.Client, *storage.RedisAdapter) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		t.Skipf("Redis not available: %v", err)
	}
	return rdb, storage.NewRedisAdapter(rdb)
}

func setupSQLiteLedger(t *testing.T) *storage.SQLLedger {
	ctx := context.Background()
	db, err := storage.OpenLedgerDB(ctx, "sqlite", filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ledger := storage.NewSQLLedger(db)
	if err := ledger.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return ledger
}

func TestIntegration_WarehouseMirrorsToRedis(t *testing.T) {
	rdb, mirror := setupRedisMirror(t)
	defer rdb.Close()

	ctx := context.Background()
	keys := []string{
		"stock:electronics:1", "stock:electronics:2", "stock:groceries:1", "stock:groceries:2",
		"stock:electronics:1:removed",
	}
	rdb.Del(ctx, keys...)
	defer rdb.Del(ctx, keys...)

	w := NewWarehouse(mirror, zap.NewNop())
	if errs := w.Seed(ctx); len(errs) != 0 {
		t.Fatalf("Seed: %v", errs)
	}

	level, ok, err := mirror.Stock(ctx, domain.CategoryGroceries, 2)
	if err != nil || !ok {
		t.Fatalf("expected mirrored bread level, ok=%v err=%v", ok, err)
	}
	if level.Name != "Bread" || level.Quantity != 30 {
		t.Errorf("unexpected level: %+v", level)
	}

	if _, err := w.IncreaseStock(ctx, domain.CategoryElectronics, 2, 7); err != nil {
		t.Fatalf("IncreaseStock: %v", err)
	}
	level, _, _ = mirror.Stock(ctx, domain.CategoryElectronics, 2)
	if level.Quantity != 17 {
		t.Errorf("expected mirrored laptop quantity 17, got %d", level.Quantity)
	}

	if err := w.Remove(ctx, domain.CategoryElectronics, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := mirror.Stock(ctx, domain.CategoryElectronics, 1); ok {
		t.Error("expected mirrored smart tv to be deleted")
	}
}

func TestIntegration_ConcurrentInsertsKeepOneItemPerID(t *testing.T) {
	rdb, mirror := setupRedisMirror(t)
	defer rdb.Close()

	ctx := context.Background()
	rdb.Del(ctx, "stock:electronics:42", "stock:electronics:42:removed")
	defer rdb.Del(ctx, "stock:electronics:42", "stock:electronics:42:removed")

	w := NewWarehouse(mirror, zap.NewNop())

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		duplicates int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := w.AddElectronic(ctx, domain.NewElectronicItem(42, "Router", 4, "TP-Link", 6))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, store.ErrDuplicateKey):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || duplicates != 24 {
		t.Errorf("expected 1 insert and 24 duplicates, got %d/%d", succeeded, duplicates)
	}
	if level, ok, _ := mirror.Stock(ctx, domain.CategoryElectronics, 42); !ok || level.Quantity != 4 {
		t.Errorf("expected mirrored router quantity 4, got %+v ok=%v", level, ok)
	}
}

func TestIntegration_FinanceRecordsToSQLLedger(t *testing.T) {
	ledger := setupSQLiteLedger(t)
	ctx := context.Background()

	f := NewFinance(NewSavingsAccount("ACC-INT", 300_00), ledger, zap.NewNop())

	if _, err := f.Process(ctx, domain.ChannelMobileMoney, 120_00, "Utilities"); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if _, err := f.Process(ctx, domain.ChannelCryptoWallet, 999_00, "Travel"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	txs, err := ledger.Transactions(ctx, "ACC-INT")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", len(txs))
	}
	if txs[0].Status != domain.TransactionStatusApplied || txs[1].Status != domain.TransactionStatusRejected {
		t.Errorf("unexpected statuses: %s, %s", txs[0].Status, txs[1].Status)
	}
	if txs[0].Reference == txs[1].Reference {
		t.Error("expected distinct references")
	}

	balance, ok, err := ledger.Balance(ctx, "ACC-INT")
	if err != nil || !ok {
		t.Fatalf("Balance: ok=%v err=%v", ok, err)
	}
	if balance != 180_00 || balance != f.BalanceCents() {
		t.Errorf("expected ledger balance 18000 matching account, got %d (account %d)", balance, f.BalanceCents())
	}
}

func TestIntegration_FinanceRecordsToMySQLLedger(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/desk?parseTime=true"
	}
	ctx := context.Background()

	db, err := storage.OpenLedgerDB(ctx, "mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	defer db.Close()

	ledger := storage.NewSQLLedger(db)
	if err := ledger.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	account := "ACC-" + uuid.NewString()[:8]
	defer cleanupAccount(db, account)

	f := NewFinance(NewSavingsAccount(account, 50_00), ledger, zap.NewNop())
	if _, err := f.Process(ctx, domain.ChannelBankTransfer, 20_00, "Books"); err != nil {
		t.Fatalf("Process: %v", err)
	}

	balance, ok, err := ledger.Balance(ctx, account)
	if err != nil || !ok || balance != 30_00 {
		t.Errorf("expected balance 3000, got %d ok=%v err=%v", balance, ok, err)
	}
}

func cleanupAccount(db *sql.DB, account string) {
	db.Exec("DELETE FROM transactions WHERE account = ?", account)
	db.Exec("DELETE FROM accounts WHERE number = ?", account)
}

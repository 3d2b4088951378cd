package rewards_test

import (
	"context"
	"errors"
	"testing"

	"github.com/focusbrain/arena/internal/database"
	"github.com/focusbrain/arena/internal/migrations"
	"github.com/focusbrain/arena/internal/rewards"
)

func newTestLedger(t *testing.T) *rewards.Ledger {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return rewards.NewLedger(db)
}

func TestCreditAccumulates(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	if err := ledger.Credit(ctx, "player-1", 50); err != nil {
		t.Fatalf("first credit: %v", err)
	}
	if err := ledger.Credit(ctx, "player-1", 50); err != nil {
		t.Fatalf("second credit: %v", err)
	}

	got, err := ledger.Balance(ctx, "player-1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 100 {
		t.Errorf("balance = %d, want 100", got)
	}
}

func TestBalanceUnknownPlayer(t *testing.T) {
	ledger := newTestLedger(t)

	_, err := ledger.Balance(context.Background(), "nobody")
	if !errors.Is(err, rewards.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

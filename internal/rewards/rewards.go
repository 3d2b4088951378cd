// Package rewards is the coin ledger the engine credits duel winners into.
// The engine only sees the Credit call; balances live in SQLite so the rest
// of the product can read them.
package rewards

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("not found")

type Ledger struct {
	db *sql.DB
}

func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Credit adds amount coins to the player's balance, creating the row on
// first credit.
func (l *Ledger) Credit(ctx context.Context, playerID string, amount int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO coins (player_id, balance)
		VALUES (?, ?)
		ON CONFLICT (player_id) DO UPDATE SET balance = balance + excluded.balance
	`, playerID, amount)
	return err
}

// Balance returns the player's coin balance.
func (l *Ledger) Balance(ctx context.Context, playerID string) (int, error) {
	var balance int
	err := l.db.QueryRowContext(ctx, `
		SELECT balance FROM coins WHERE player_id = ?
	`, playerID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return balance, err
}

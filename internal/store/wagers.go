package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SettleWager applies one settlement as a single transaction: debit the
// stake, credit the payout, append the wager row. The row lock serializes
// concurrent settlements on the same account, so the stake check can never
// pass against a stale balance. Any failure rolls the whole settlement back.
func (s *Store) SettleWager(ctx context.Context, accountID, game, result string, stake, payout int64) (int64, error) {
	if stake <= 0 {
		return 0, errors.New("stake must be positive")
	}
	if payout < 0 {
		return 0, errors.New("payout must not be negative")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	err = tx.QueryRow(ctx, `SELECT balance_cents FROM accounts WHERE id = $1 FOR UPDATE`, accountID).Scan(&bal)
	if err != nil {
		return 0, mapNotFound(err)
	}
	if bal < stake {
		return 0, ErrInsufficientFunds
	}
	newBal := bal - stake + payout
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance_cents = $1, updated_at = now() WHERE id = $2`, newBal, accountID); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO wagers (id, account_id, game, result, amount_cents)
		VALUES ($1, $2, $3, $4, $5)`,
		NewID(), accountID, game, result, stake); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) ListWagers(ctx context.Context, accountID string, limit, offset int) ([]Wager, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, account_id, game, result, amount_cents, created_at
		FROM wagers WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Wager{}
	for rows.Next() {
		var w Wager
		if err := rows.Scan(&w.ID, &w.AccountID, &w.Game, &w.Result, &w.AmountCents, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) CountWagers(ctx context.Context, accountID string) (int, error) {
	var c int
	err := s.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM wagers WHERE account_id = $1`, accountID).Scan(&c)
	return c, err
}

package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const accountColumns = `id, username, password_hash, balance_cents, is_owner, created_at, updated_at`

func (s *Store) CreateAccount(ctx context.Context, username, passwordHash string, isOwner bool, initialBalance int64) (*Account, error) {
	id := NewID()
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO accounts (id, username, password_hash, balance_cents, is_owner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+accountColumns,
		id, username, passwordHash, initialBalance, isOwner)
	a, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return a, nil
}

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

func (s *Store) GetBalance(ctx context.Context, accountID string) (int64, error) {
	var bal int64
	err := s.Pool.QueryRow(ctx, `SELECT balance_cents FROM accounts WHERE id = $1`, accountID).Scan(&bal)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return bal, nil
}

// CreditByUsername adds amount to the named account's balance. It is the
// owner's direct credit path and deliberately writes no wager row.
func (s *Store) CreditByUsername(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id string
	var bal int64
	err = tx.QueryRow(ctx, `SELECT id, balance_cents FROM accounts WHERE username = $1 FOR UPDATE`, username).Scan(&id, &bal)
	if err != nil {
		return 0, mapNotFound(err)
	}
	newBal := bal + amount
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance_cents = $1, updated_at = now() WHERE id = $2`, newBal, id); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}

func (s *Store) ListAccounts(ctx context.Context, limit, offset int) ([]Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.BalanceCents, &a.IsOwner, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

package store

import "time"

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	BalanceCents int64     `json:"balance_cents"`
	IsOwner      bool      `json:"is_owner"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Wager is one appended history row per settled wager. Rows are immutable.
type Wager struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Game        string    `json:"game"`
	Result      string    `json:"result"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is a resolved browser session: the account identity plus the
// privilege flag, loaded in one query so authorization never re-reads state.
type Session struct {
	AccountID string
	Username  string
	IsOwner   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

package wager

import (
	"context"
	"errors"
	mathrand "math/rand/v2"

	"house-edge/internal/game"
	"house-edge/internal/store"
)

type Service struct {
	store *store.Store
	rng   game.Rand
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, rng: systemRand{}}
}

// NewServiceWithRand pins the randomness source; tests use it to force
// outcomes.
func NewServiceWithRand(st *store.Store, r game.Rand) *Service {
	return &Service{store: st, rng: r}
}

// Settle validates the stake, draws the outcome once, and applies the
// settlement atomically. The store call is not retried: the draw already
// happened, and re-drawing would let a client shop for outcomes.
func (s *Service) Settle(ctx context.Context, accountID, gameName string, stake int64) (*Settlement, error) {
	if stake <= 0 {
		return nil, ErrInvalidStake
	}
	if !game.Known(gameName) {
		return nil, ErrUnknownGame
	}

	var (
		result         string
		player, dealer int
	)
	switch gameName {
	case game.Blackjack:
		out := game.PlayBlackjack(s.rng)
		result, player, dealer = out.Result, out.PlayerScore, out.DealerScore
	case game.Plinko:
		result = game.PlayPlinko(s.rng)
	}
	payout, err := game.Payout(gameName, result, stake)
	if err != nil {
		return nil, ErrUnknownGame
	}

	newBal, err := s.store.SettleWager(ctx, accountID, gameName, result, stake, payout)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}
	return &Settlement{
		Game:        gameName,
		Result:      result,
		PlayerScore: player,
		DealerScore: dealer,
		Balance:     newBal,
	}, nil
}

func (s *Service) History(ctx context.Context, accountID string, limit, offset int) ([]store.Wager, error) {
	return s.store.ListWagers(ctx, accountID, limit, offset)
}

type systemRand struct{}

func (systemRand) IntN(n int) int { return mathrand.IntN(n) }

package wager

import "errors"

var (
	ErrInvalidStake      = errors.New("invalid_stake")
	ErrUnknownGame       = errors.New("unknown_game")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)

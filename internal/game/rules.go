package game

import "errors"

const (
	Blackjack = "blackjack"
	Plinko    = "plinko"
)

const (
	ResultWin     = "win"
	ResultLose    = "lose"
	ResultJackpot = "jackpot"
)

var ErrUnknownGame = errors.New("unknown_game")

const (
	blackjackPlayerMin = 15
	blackjackPlayerMax = 21
	blackjackDealerMin = 17
	blackjackDealerMax = 21
)

type weightedResult struct {
	result string
	weight int
}

// Weights are arbitrary non-negative ints, normalized by their total at
// draw time.
var plinkoWeights = []weightedResult{
	{ResultLose, 70},
	{ResultWin, 25},
	{ResultJackpot, 5},
}

func Known(game string) bool {
	return game == Blackjack || game == Plinko
}

// Payout returns the amount credited back for a settled wager. The stake
// itself is always debited up front, so a winning blackjack payout of
// 2x stake is a net gain of one stake.
func Payout(game, result string, stake int64) (int64, error) {
	switch game {
	case Blackjack:
		if result == ResultWin {
			return 2 * stake, nil
		}
		return 0, nil
	case Plinko:
		switch result {
		case ResultWin:
			// 1.5x stake in integer cents, odd stakes round down.
			return stake * 3 / 2, nil
		case ResultJackpot:
			return 10 * stake, nil
		}
		return 0, nil
	}
	return 0, ErrUnknownGame
}

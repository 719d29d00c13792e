package game

// Rand is the single randomness source for outcome draws. Each settlement
// draws exactly once; a failed settlement is never re-drawn, so a client
// cannot observe two outcomes for one stake.
type Rand interface {
	IntN(n int) int
}

type BlackjackOutcome struct {
	PlayerScore int
	DealerScore int
	Result      string
}

// PlayBlackjack draws the player score uniformly from [15,21] and the
// dealer score uniformly from [17,21]. The player wins when their score
// beats the dealer's or the dealer busts past 21.
func PlayBlackjack(r Rand) BlackjackOutcome {
	player := blackjackPlayerMin + r.IntN(blackjackPlayerMax-blackjackPlayerMin+1)
	dealer := blackjackDealerMin + r.IntN(blackjackDealerMax-blackjackDealerMin+1)
	result := ResultLose
	if player > dealer || dealer > 21 {
		result = ResultWin
	}
	return BlackjackOutcome{PlayerScore: player, DealerScore: dealer, Result: result}
}

// PlayPlinko draws one outcome from the weighted lose/win/jackpot
// distribution.
func PlayPlinko(r Rand) string {
	total := 0
	for _, w := range plinkoWeights {
		total += w.weight
	}
	n := r.IntN(total)
	for _, w := range plinkoWeights {
		if n < w.weight {
			return w.result
		}
		n -= w.weight
	}
	return plinkoWeights[len(plinkoWeights)-1].result
}

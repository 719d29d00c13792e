package wager

// Settlement is the outcome of one settled wager: the terminal result
// label, the per-game auxiliary values, and the resulting balance.
type Settlement struct {
	Game        string
	Result      string
	PlayerScore int // blackjack only
	DealerScore int // blackjack only
	Balance     int64
}

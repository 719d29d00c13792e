package game

import (
	"errors"
	"testing"
)

func TestPayout(t *testing.T) {
	tests := []struct {
		name   string
		game   string
		result string
		stake  int64
		want   int64
	}{
		{name: "blackjack win pays double", game: Blackjack, result: ResultWin, stake: 100, want: 200},
		{name: "blackjack lose pays nothing", game: Blackjack, result: ResultLose, stake: 100, want: 0},
		{name: "plinko lose pays nothing", game: Plinko, result: ResultLose, stake: 100, want: 0},
		{name: "plinko win pays 1.5x", game: Plinko, result: ResultWin, stake: 100, want: 150},
		{name: "plinko win rounds odd stakes down", game: Plinko, result: ResultWin, stake: 101, want: 151},
		{name: "plinko jackpot pays 10x", game: Plinko, result: ResultJackpot, stake: 100, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Payout(tt.game, tt.result, tt.stake)
			if err != nil {
				t.Fatalf("Payout() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Payout() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPayoutUnknownGame(t *testing.T) {
	_, err := Payout("roulette", ResultWin, 100)
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}
}

func TestKnown(t *testing.T) {
	if !Known(Blackjack) || !Known(Plinko) {
		t.Fatal("expected blackjack and plinko to be known")
	}
	if Known("roulette") || Known("") {
		t.Fatal("expected unknown games to be rejected")
	}
}

package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"house-edge/internal/app/account"
	"house-edge/internal/app/wager"
	"house-edge/internal/game"

	"github.com/rs/zerolog/log"
)

type PlayerHandlers struct {
	accounts *account.Service
	wagers   *wager.Service
}

func NewPlayerHandlers(accounts *account.Service, wagers *wager.Service) *PlayerHandlers {
	return &PlayerHandlers{accounts: accounts, wagers: wagers}
}

func (h *PlayerHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFromContext(r.Context())
		bal, err := h.accounts.Balance(r.Context(), p.AccountID)
		if err != nil {
			log.Error().Err(err).Msg("read balance failed")
			writeMessage(w, http.StatusInternalServerError, "Internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"balance": bal})
	}
}

func (h *PlayerHandlers) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFromContext(r.Context())
		limit, offset := ParsePagination(r)
		items, err := h.wagers.History(r.Context(), p.AccountID, limit, offset)
		if err != nil {
			log.Error().Err(err).Msg("list wagers failed")
			writeMessage(w, http.StatusInternalServerError, "Internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

type betBody struct {
	Bet int64 `json:"bet"`
}

func (h *PlayerHandlers) Blackjack() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := h.settle(w, r, game.Blackjack)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"result":       res.Result,
			"player_score": res.PlayerScore,
			"dealer_score": res.DealerScore,
			"balance":      res.Balance,
		})
	}
}

func (h *PlayerHandlers) Plinko() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := h.settle(w, r, game.Plinko)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"result":  res.Result,
			"balance": res.Balance,
		})
	}
}

func (h *PlayerHandlers) settle(w http.ResponseWriter, r *http.Request, gameName string) (*wager.Settlement, bool) {
	p, _ := PrincipalFromContext(r.Context())
	var body betBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	res, err := h.wagers.Settle(r.Context(), p.AccountID, gameName, body.Bet)
	if err != nil {
		switch {
		case errors.Is(err, wager.ErrInvalidStake):
			writeMessage(w, http.StatusBadRequest, "Invalid bet")
		case errors.Is(err, wager.ErrInsufficientFunds):
			writeMessage(w, http.StatusBadRequest, "Insufficient balance")
		default:
			log.Error().Err(err).Str("game", gameName).Msg("settle failed")
			writeMessage(w, http.StatusInternalServerError, "Internal error")
		}
		return nil, false
	}
	return res, true
}

package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"house-edge/internal/store"

	"github.com/rs/zerolog/log"
)

type AdminHandlers struct {
	store *store.Store
}

func NewAdminHandlers(st *store.Store) *AdminHandlers {
	return &AdminHandlers{store: st}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
	}
}

// AddBalance directly credits a named account. Non-positive amounts are
// rejected; a separate debit operation would be the place for corrections.
func (h *AdminHandlers) AddBalance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Amount   int64  `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Username == "" || body.Amount <= 0 {
			writeMessage(w, http.StatusBadRequest, "Username and a positive amount are required")
			return
		}
		newBal, err := h.store.CreditByUsername(r.Context(), body.Username, body.Amount)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, "User not found")
				return
			}
			log.Error().Err(err).Msg("credit account failed")
			writeMessage(w, http.StatusInternalServerError, "Internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Balance updated", "new_balance": newBal})
	}
}

func (h *AdminHandlers) Accounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListAccounts(r.Context(), limit, offset)
		if err != nil {
			log.Error().Err(err).Msg("list accounts failed")
			writeMessage(w, http.StatusInternalServerError, "Internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

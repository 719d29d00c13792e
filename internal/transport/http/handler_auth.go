package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"house-edge/internal/app/account"
	"house-edge/internal/store"

	"github.com/rs/zerolog/log"
)

type AuthHandlers struct {
	accounts *account.Service
}

func NewAuthHandlers(accounts *account.Service) *AuthHandlers {
	return &AuthHandlers{accounts: accounts}
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		_, err := h.accounts.Register(r.Context(), body.Username, body.Password)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrDuplicateUsername):
				writeMessage(w, http.StatusBadRequest, "Username already exists")
			case errors.Is(err, account.ErrInvalidRequest):
				writeMessage(w, http.StatusBadRequest, "Username and password are required")
			default:
				log.Error().Err(err).Msg("register failed")
				writeMessage(w, http.StatusInternalServerError, "Internal error")
			}
			return
		}
		writeMessage(w, http.StatusOK, "User registered successfully")
	}
}

func (h *AuthHandlers) Login() http.HandlerFunc {
	return loginHandler(h.accounts.Login)
}

// AdminLogin verifies owner credentials; there is no hardcoded owner
// account and no ambient admin flag, just a session whose account carries
// the owner bit.
func (h *AuthHandlers) AdminLogin() http.HandlerFunc {
	return loginHandler(h.accounts.OwnerLogin)
}

func loginHandler(login func(ctx context.Context, username, password string) (string, *store.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		token, sess, err := login(r.Context(), body.Username, body.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			log.Error().Err(err).Msg("login failed")
			writeMessage(w, http.StatusInternalServerError, "Internal error")
			return
		}
		setSessionCookie(w, token, sess.ExpiresAt)
		writeMessage(w, http.StatusOK, "Login successful")
	}
}

func (h *AuthHandlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if err := h.accounts.Logout(r.Context(), cookie.Value); err != nil {
				log.Error().Err(err).Msg("delete session failed")
			}
		}
		clearSessionCookie(w)
		writeMessage(w, http.StatusOK, "Logged out")
	}
}

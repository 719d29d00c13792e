package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"house-edge/internal/config"
	"house-edge/internal/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	store           *store.Store
	sessionTTL      time.Duration
	startingBalance int64
}

func NewService(st *store.Store, cfg config.ServerConfig) *Service {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		store:           st,
		sessionTTL:      ttl,
		startingBalance: cfg.StartingBalanceCents,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (*store.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acct, err := s.store.CreateAccount(ctx, username, string(hash), false, s.startingBalance)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return acct, nil
}

// Login verifies the credentials and opens a session. The returned token is
// the raw cookie value; only its hash is stored.
func (s *Service) Login(ctx context.Context, username, password string) (string, *store.Session, error) {
	return s.login(ctx, username, password, false)
}

// OwnerLogin is Login restricted to owner accounts. A valid password on a
// non-owner account fails the same way as a bad password, so the endpoint
// does not reveal which accounts are owners.
func (s *Service) OwnerLogin(ctx context.Context, username, password string) (string, *store.Session, error) {
	return s.login(ctx, username, password, true)
}

func (s *Service) login(ctx context.Context, username, password string, requireOwner bool) (string, *store.Session, error) {
	acct, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if requireOwner && !acct.IsOwner {
		return "", nil, ErrInvalidCredentials
	}
	token, err := newSessionToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.store.CreateSession(ctx, token, acct.ID, s.sessionTTL); err != nil {
		return "", nil, err
	}
	sess := &store.Session{
		AccountID: acct.ID,
		Username:  acct.Username,
		IsOwner:   acct.IsOwner,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	return token, sess, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

func (s *Service) Balance(ctx context.Context, accountID string) (int64, error) {
	return s.store.GetBalance(ctx, accountID)
}

// EnsureOwner seeds the configured owner account at startup. An existing
// account with that username is left untouched; it is never promoted.
func (s *Service) EnsureOwner(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidRequest
	}
	existing, err := s.store.GetAccountByUsername(ctx, username)
	if err == nil {
		if !existing.IsOwner {
			log.Warn().Str("username", username).Msg("configured owner username exists without owner flag")
		}
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.store.CreateAccount(ctx, username, string(hash), true, 0); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("owner account created")
	return nil
}

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}

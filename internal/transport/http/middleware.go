package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"house-edge/internal/logging"
	"house-edge/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

type principalContextKey struct{}

// Principal is the resolved session: the account identity plus the owner
// flag, carried as an explicit request-scoped value rather than ambient
// state.
type Principal struct {
	AccountID string
	Username  string
	IsOwner   bool
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

func APILogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:              slog.LevelInfo,
			Schema:             httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogRequestBody:     func(*http.Request) bool { return false },
			LogResponseBody:    func(*http.Request) bool { return false },
			LogRequestHeaders:  []string{},
			LogResponseHeaders: []string{},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}

// SessionAuthMiddleware resolves the session cookie to a Principal or
// rejects with 401. Expired and unknown tokens look identical to callers.
func SessionAuthMiddleware(st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			sess, err := st.GetSessionByToken(r.Context(), cookie.Value)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			p := Principal{
				AccountID: sess.AccountID,
				Username:  sess.Username,
				IsOwner:   sess.IsOwner,
			}
			ctx := context.WithValue(r.Context(), principalContextKey{}, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner gates owner-only routes. It runs after SessionAuthMiddleware,
// so a missing principal is a misconfigured route, not a user error.
func RequireOwner() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !p.IsOwner {
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"house-edge/internal/app/account"
	"house-edge/internal/app/wager"
	"house-edge/internal/config"
	"house-edge/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, cfg config.ServerConfig) *chi.Mux {
	accountSvc := account.NewService(st, cfg)
	wagerSvc := wager.NewService(st)

	authHandlers := NewAuthHandlers(accountSvc)
	playerHandlers := NewPlayerHandlers(accountSvc, wagerSvc)
	adminHandlers := NewAdminHandlers(st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(APILogMiddleware())

	r.Get("/healthz", adminHandlers.Health())
	r.Post("/register", authHandlers.Register())
	r.Post("/login", authHandlers.Login())
	r.Post("/admin/login", authHandlers.AdminLogin())

	r.Group(func(r chi.Router) {
		r.Use(SessionAuthMiddleware(st))
		r.Post("/logout", authHandlers.Logout())
		r.Get("/balance", playerHandlers.Balance())
		r.Get("/history", playerHandlers.History())
		r.Post("/blackjack", playerHandlers.Blackjack())
		r.Post("/plinko", playerHandlers.Plinko())

		r.Route("/owner", func(r chi.Router) {
			r.Use(RequireOwner())
			r.Post("/add_balance", adminHandlers.AddBalance())
			r.Get("/accounts", adminHandlers.Accounts())
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}

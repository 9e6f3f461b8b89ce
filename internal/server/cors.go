package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/sngm3741/match-intake/api/internal/interfaces/http/common"
	"github.com/sngm3741/match-intake/api/internal/intake/domain"
)

const corsMaxAge = "300"

// originGuard は許可オリジン集合に基づき、ハンドラより前でクロスオリジン要求を許可/拒否する。
type originGuard struct {
	allowed map[string]struct{}
	logger  *log.Logger
}

func newOriginGuard(origins []string, logger *log.Logger) *originGuard {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin == "" {
			continue
		}
		allowed[origin] = struct{}{}
	}
	return &originGuard{allowed: allowed, logger: logger}
}

// admit reports whether a request declaring origin may proceed. Requests
// without an Origin header come from non-browser clients and always pass.
// Matching is exact; no wildcard or pattern is honoured.
func (g *originGuard) admit(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := g.allowed[origin]
	return ok
}

// middleware returns the guard for a route group. Admitted browser requests
// get CORS headers; preflights are answered here with methods as the allowed
// set and never reach the route handler.
func (g *originGuard) middleware(methods ...string) func(http.Handler) http.Handler {
	allowMethods := strings.Join(methods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !g.admit(origin) {
				g.logger.Printf("%v: origin=%q %s %s", domain.ErrOriginDenied, origin, r.Method, r.URL.Path)
				common.WriteError(g.logger, w, http.StatusForbidden, common.MessageOriginDenied)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", allowMethods)
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

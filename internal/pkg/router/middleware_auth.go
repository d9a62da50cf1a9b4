package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/elasticmail/internal/pkg/config"
	"github.com/shandysiswandi/elasticmail/internal/pkg/hash"
)

// HeaderAdminToken carries the shared admin token.
const HeaderAdminToken = "X-Admin-Token"

// middlewareAdminToken requires app.server.admin_token on every route except
// the public ones. "Authorization: Bearer <token>" is accepted as well.
func middlewareAdminToken(cfg config.Config, hasher hash.Hash, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := public[r.Method][matchedRoutePath(r)]; skip {
				next.ServeHTTP(w, r)
				return
			}

			expected := ""
			if cfg != nil {
				expected = cfg.GetString("app.server.admin_token")
			}
			if expected == "" || hasher == nil {
				writeJSON(w, errorResponse{Message: "Admin token is not configured"}, http.StatusServiceUnavailable)
				return
			}

			presented := presentedToken(r)
			if presented == "" {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			digest, err := hasher.Hash(expected)
			if err != nil || !hasher.Verify(string(digest), presented) {
				writeJSON(w, errorResponse{Message: "Invalid admin token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func presentedToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(HeaderAdminToken)); t != "" {
		return t
	}

	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
		return p[1]
	}
	return ""
}

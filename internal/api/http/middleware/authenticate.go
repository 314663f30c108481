package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mpetrov/geovault/internal/logger"
	"github.com/mpetrov/geovault/internal/model"
)

// ActorParser resolves actors from bearer tokens.
type ActorParser interface {
	ParseActorToken(tokenString string) (model.Actor, error)
}

// Authenticate validates bearer tokens and injects the actor into the
// request context. Token minting belongs to the external identity provider;
// this middleware only trusts what it can verify.
type Authenticate struct {
	parser ActorParser
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(parser ActorParser, logger *logger.Logger) *Authenticate {
	return &Authenticate{parser: parser, logger: logger}
}

// Handler parses the Authorization header and stores the actor in context.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			unauthorized(w, "missing authorization token")
			return
		}

		actor, err := m.parser.ParseActorToken(tokenString)
		if err != nil {
			m.logger.Warn("failed to authenticate request", "error", err)
			unauthorized(w, "invalid authorization token")
			return
		}

		next.ServeHTTP(w, r.WithContext(model.WithActor(r.Context(), actor)))
	})
}

// RequireAdmin rejects non-admin actors. Must run after Handler.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := model.ActorFromContext(r.Context())
		if !ok || !actor.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"carecamps/auth"
	"carecamps/globals"

	"github.com/julienschmidt/httprouter"
)

// AdminChecker is the role lookup the admin gate needs from the user
// store.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Gate holds the two authorization checks. Authenticate enforces
// "acting as self": a valid token whose email claim matches the ?email=
// query parameter. AdminOnly additionally requires the admin role, and
// reads the identity Authenticate put in the context rather than the
// raw query string, so it cannot be mounted unguarded by mistake.
type Gate struct {
	Tokens *auth.TokenService
	Users  AdminChecker
}

func NewGate(tokens *auth.TokenService, users AdminChecker) *Gate {
	return &Gate{Tokens: tokens, Users: users}
}

func (g *Gate) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		claims, err := g.Tokens.Verify(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if r.URL.Query().Get("email") != claims.Email {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), globals.EmailKey, claims.Email)
		next(w, r.WithContext(ctx), ps)
	}
}

func (g *Gate) AdminOnly(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		email, ok := r.Context().Value(globals.EmailKey).(string)
		if !ok || email == "" {
			// Authenticate did not run; never fall back to the query.
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		isAdmin, err := g.Users.IsAdmin(r.Context(), email)
		if err != nil || !isAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	}
}

// Chain composes middlewares left to right, outermost first.
func Chain(middlewares ...func(httprouter.Handle) httprouter.Handle) func(httprouter.Handle) httprouter.Handle {
	return func(final httprouter.Handle) httprouter.Handle {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// EmailFromContext returns the verified caller identity, if any.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(globals.EmailKey).(string)
	return email
}

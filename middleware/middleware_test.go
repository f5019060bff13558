package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"carecamps/auth"
	"carecamps/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminChecker struct {
	admins map[string]bool
	err    error
}

func (f *fakeAdminChecker) IsAdmin(_ context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[email], nil
}

func newTestGate(t *testing.T, admins map[string]bool) (*Gate, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService([]byte("test-secret"))
	return NewGate(tokens, &fakeAdminChecker{admins: admins}), tokens
}

func noopHandle(called *bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	gate, _ := newTestGate(t, nil)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registeredCamps?email=p@x.com", nil)
	gate.Authenticate(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	gate, _ := newTestGate(t, nil)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registeredCamps?email=p@x.com", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	gate.Authenticate(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateEmailMismatch(t *testing.T) {
	gate, tokens := newTestGate(t, nil)
	token, err := tokens.Issue("p@x.com", "")
	require.NoError(t, err)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registeredCamps?email=other@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	gate.Authenticate(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateSetsVerifiedIdentity(t *testing.T) {
	gate, tokens := newTestGate(t, nil)
	token, err := tokens.Issue("p@x.com", "")
	require.NoError(t, err)

	var seen string
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/registeredCamps?email=p@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	gate.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen = EmailFromContext(r.Context())
	})(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p@x.com", seen)
}

func TestAdminOnlyWithoutAuthenticate(t *testing.T) {
	// AdminOnly never consults the query string; mounted without
	// Authenticate it denies everything.
	gate, _ := newTestGate(t, map[string]bool{"admin@x.com": true})

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/camps?email=admin@x.com", nil)
	gate.AdminOnly(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAdminOnlyRejectsMember(t *testing.T) {
	gate, _ := newTestGate(t, map[string]bool{"admin@x.com": true})

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/camps", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.EmailKey, "member@x.com"))
	gate.AdminOnly(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestAdminOnlyRejectsOnLookupError(t *testing.T) {
	tokens := auth.NewTokenService([]byte("test-secret"))
	gate := NewGate(tokens, &fakeAdminChecker{err: errors.New("store down")})

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/camps", nil)
	req = req.WithContext(context.WithValue(req.Context(), globals.EmailKey, "admin@x.com"))
	gate.AdminOnly(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestChainComposesInOrder(t *testing.T) {
	gate, tokens := newTestGate(t, map[string]bool{"admin@x.com": true})
	token, err := tokens.Issue("admin@x.com", "")
	require.NoError(t, err)

	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/camps?email=admin@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	Chain(gate.Authenticate, gate.AdminOnly)(noopHandle(&called))(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carecamps/globals"
	"carecamps/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeUserStore struct {
	users       map[string]*models.User
	lastUpsert  bson.M
	lastUpdate  bson.M
	updateEmail string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) Upsert(_ context.Context, email string, fields bson.M) (int64, int64, error) {
	f.lastUpsert = fields
	if _, ok := f.users[email]; ok {
		return 1, 0, nil
	}
	f.users[email] = &models.User{Email: email}
	return 0, 1, nil
}

func (f *fakeUserStore) Update(_ context.Context, email string, fields bson.M) (int64, error) {
	f.updateEmail = email
	f.lastUpdate = fields
	if _, ok := f.users[email]; !ok {
		return 0, nil
	}
	return 1, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func asUser(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), globals.EmailKey, email))
}

func TestUpsertUserIdempotent(t *testing.T) {
	store := newFakeUserStore()
	h := &Handler{Store: store}

	put := func() map[string]int64 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/users",
			strings.NewReader(`{"email":"p@x.com","name":"Pat"}`))
		h.UpsertUser(rec, req, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]int64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := put()
	assert.Equal(t, int64(1), first["upsertedCount"])

	second := put()
	assert.Equal(t, int64(0), second["upsertedCount"])
	assert.Equal(t, int64(1), second["matchedCount"])
}

func TestUpsertUserRequiresEmail(t *testing.T) {
	h := &Handler{Store: newFakeUserStore()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/users", strings.NewReader(`{"name":"Pat"}`))
	h.UpsertUser(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserStripsIdentityFields(t *testing.T) {
	store := newFakeUserStore()
	store.users["p@x.com"] = &models.User{Email: "p@x.com"}
	h := &Handler{Store: store}

	rec := httptest.NewRecorder()
	body := `{"name":"Pat","role":"admin","email":"evil@x.com"}`
	req := asUser(httptest.NewRequest(http.MethodPatch, "/users?email=p@x.com", strings.NewReader(body)), "p@x.com")
	h.UpdateUser(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p@x.com", store.updateEmail)
	assert.NotContains(t, store.lastUpdate, "role")
	assert.NotContains(t, store.lastUpdate, "email")
	assert.Equal(t, "Pat", store.lastUpdate["name"])
}

func TestGetAdminFlag(t *testing.T) {
	store := newFakeUserStore()
	store.users["admin@x.com"] = &models.User{Email: "admin@x.com", Role: models.RoleAdmin}
	store.users["member@x.com"] = &models.User{Email: "member@x.com"}
	h := &Handler{Store: store}

	check := func(email string) bool {
		rec := httptest.NewRecorder()
		req := asUser(httptest.NewRequest(http.MethodGet, "/admin?email="+email, nil), email)
		h.GetAdminFlag(rec, req, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp["admin"]
	}

	assert.True(t, check("admin@x.com"))
	assert.False(t, check("member@x.com"))
	assert.False(t, check("nobody@x.com"), "missing user is not an admin")
}

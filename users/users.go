package users

import (
	"context"
	"encoding/json"
	"net/http"

	"carecamps/middleware"
	"carecamps/models"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type userStore interface {
	Upsert(ctx context.Context, email string, fields bson.M) (matched, upserted int64, err error)
	Update(ctx context.Context, email string, fields bson.M) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type Handler struct {
	Store userStore
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// UpsertUser handles PUT /users, the first-login profile write. Keyed
// by the email in the body.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user data")
		return
	}
	email, _ := fields["email"].(string)
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	matched, upserted, err := h.Store.Upsert(r.Context(), email, fields)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"matchedCount": matched, "upsertedCount": upserted})
}

// UpdateUser handles PATCH /users (self-gated). The filter email comes
// from the verified token identity, never the body.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := middleware.EmailFromContext(r.Context())

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	// Identity and capability fields stay out of the self-service path.
	delete(fields, "email")
	delete(fields, "role")

	modified, err := h.Store.Update(r.Context(), email, fields)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"modifiedCount": modified})
}

// GetAdminFlag handles GET /admin: the client checks whether the caller
// may see the admin dashboard.
func (h *Handler) GetAdminFlag(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := middleware.EmailFromContext(r.Context())

	user, err := h.Store.FindByEmail(r.Context(), email)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to look up user")
		return
	}
	admin := user != nil && user.Role == models.RoleAdmin
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"admin": admin})
}

package reviews

import (
	"context"
	"encoding/json"
	"net/http"

	"carecamps/middleware"
	"carecamps/models"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
)

type reviewStore interface {
	Upsert(ctx context.Context, review models.Review) (inserted bool, err error)
	List(ctx context.Context) ([]models.Review, error)
}

type Handler struct {
	Store reviewStore
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// UpsertReview handles PUT /reviews (self): one review per (user, camp)
// pair, last write wins.
func (h *Handler) UpsertReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := middleware.EmailFromContext(r.Context())

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil || review.CampID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}
	if review.Rating < 1 || review.Rating > 5 || review.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	review.Email = email
	review.FindingKey = models.FindingKey(email, review.CampID)

	inserted, err := h.Store.Upsert(r.Context(), review)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	upsertedCount := 0
	if inserted {
		upsertedCount = 1
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"upsertedCount": upsertedCount})
}

// GetReviews handles GET /reviews: the public list, newest first.
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reviews, err := h.Store.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reviews)
}

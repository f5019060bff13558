package stats

import (
	"context"
	"net/http"
	"time"

	"carecamps/models"
	"carecamps/rdx"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
)

const statsCacheTTL = time.Minute

type statStore interface {
	Global(ctx context.Context) (*GlobalStats, error)
	User(ctx context.Context, email string) (*UserStats, error)
	Professionals(ctx context.Context) ([]models.Professional, error)
}

type Handler struct {
	Store statStore
	Cache *rdx.Cache
}

func NewHandler(store *Store, cache *rdx.Cache) *Handler {
	return &Handler{Store: store, Cache: cache}
}

// GetGlobalStats handles GET /stat.
func (h *Handler) GetGlobalStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cached GlobalStats
	if h.Cache.GetJSON(r.Context(), rdx.KeyGlobalStats, &cached) {
		utils.RespondWithJSON(w, http.StatusOK, cached)
		return
	}

	stats, err := h.Store.Global(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	h.Cache.SetJSON(r.Context(), rdx.KeyGlobalStats, stats, statsCacheTTL)

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GetUserStats handles GET /userStat?email=.
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email is required")
		return
	}

	stats, err := h.Store.User(r.Context(), email)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to compute user stats")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GetProfessionals handles GET /professionals, the presenter directory.
func (h *Handler) GetProfessionals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pros, err := h.Store.Professionals(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch professionals")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, pros)
}

package camps

import (
	"context"
	"net/http"
	"time"

	"carecamps/middleware"
	"carecamps/models"
	"carecamps/rdx"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
)

const popularCacheTTL = time.Minute

// GetCamps handles GET /camps, the public paginated search.
func (h *Handler) GetCamps(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, PageSize)
	q := SearchQuery{
		Key:       r.URL.Query().Get("searchKey"),
		SortField: r.URL.Query().Get("sortParam"),
		Skip:      skip,
		Limit:     limit,
	}

	camps, err := h.Store.Search(ctx, q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch camps")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, camps)
}

// GetCampsCount handles GET /camps/count, the page-count companion.
func (h *Handler) GetCampsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.Store.Count(r.Context(), SearchQuery{Key: r.URL.Query().Get("searchKey")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch camp count")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}

// GetPopularCamps handles GET /camps/popular: top six by participant
// count, served from the redis cache when warm.
func (h *Handler) GetPopularCamps(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var camps []models.Camp
	if h.Cache.GetJSON(r.Context(), rdx.KeyPopularCamps, &camps) {
		utils.RespondWithJSON(w, http.StatusOK, camps)
		return
	}

	camps, err := h.Store.Popular(r.Context(), PageSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch popular camps")
		return
	}
	h.Cache.SetJSON(r.Context(), rdx.KeyPopularCamps, camps, popularCacheTTL)

	utils.RespondWithJSON(w, http.StatusOK, camps)
}

// GetCamp handles GET /camp-details/:campId. A miss responds 200 with
// null; the client interprets the empty result.
func (h *Handler) GetCamp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	camp, err := h.Store.Get(r.Context(), ps.ByName("campId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch camp")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, camp)
}

// GetOwnerCamps handles GET /camps/owner (admin dashboard): the same
// search restricted to camps the caller created, with the total count
// in the same payload.
func (h *Handler) GetOwnerCamps(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, PageSize)
	q := SearchQuery{
		Key:       r.URL.Query().Get("searchKey"),
		SortField: r.URL.Query().Get("sortParam"),
		Owner:     middleware.EmailFromContext(r.Context()),
		Skip:      skip,
		Limit:     limit,
	}

	camps, err := h.Store.Search(r.Context(), q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch camps")
		return
	}
	count, err := h.Store.Count(r.Context(), q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch camp count")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"camps": camps, "count": count})
}

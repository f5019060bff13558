package camps

import (
	"context"
	"encoding/json"
	"net/http"

	"carecamps/middleware"
	"carecamps/models"
	"carecamps/rdx"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type campStore interface {
	Search(ctx context.Context, q SearchQuery) ([]models.Camp, error)
	Count(ctx context.Context, q SearchQuery) (int64, error)
	Popular(ctx context.Context, limit int64) ([]models.Camp, error)
	Get(ctx context.Context, id string) (*models.Camp, error)
	Insert(ctx context.Context, camp models.Camp) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, fields bson.M) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type Handler struct {
	Store campStore
	Cache *rdx.Cache
}

func NewHandler(store *Store, cache *rdx.Cache) *Handler {
	return &Handler{Store: store, Cache: cache}
}

// CreateCamp handles POST /camps (admin only). The client sends fees
// and participantCount as strings and dateTime in whatever the date
// picker produced; all three are normalized before the insert.
func (h *Handler) CreateCamp(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body bson.M
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid camp data")
		return
	}

	camp := models.Camp{
		Name:             str(body["campName"]),
		Location:         str(body["location"]),
		ProfessionalName: str(body["professionalName"]),
		Description:      str(body["description"]),
		PhotoURL:         str(body["photoURL"]),
		DateTime:         utils.FormatDateTime(str(body["dateTime"])),
		Fees:             toFloat(body["fees"]),
		ParticipantCount: toInt(body["participantCount"]),
		AddedBy:          middleware.EmailFromContext(r.Context()),
	}
	if camp.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Camp name is required")
		return
	}

	id, err := h.Store.Insert(r.Context(), camp)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create camp")
		return
	}
	h.Cache.Invalidate(r.Context(), rdx.KeyPopularCamps, rdx.KeyGlobalStats)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": id.Hex()})
}

// UpdateCamp handles PATCH /update-camp/:campId (admin only).
func (h *Handler) UpdateCamp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	delete(fields, "_id")
	delete(fields, "addedBy")
	if v, ok := fields["fees"]; ok {
		fields["fees"] = toFloat(v)
	}
	if v, ok := fields["participantCount"]; ok {
		fields["participantCount"] = toInt(v)
	}
	if v, ok := fields["dateTime"]; ok {
		fields["dateTime"] = utils.FormatDateTime(str(v))
	}

	modified, err := h.Store.Update(r.Context(), ps.ByName("campId"), fields)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update camp")
		return
	}
	h.Cache.Invalidate(r.Context(), rdx.KeyPopularCamps, rdx.KeyGlobalStats)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"modifiedCount": modified})
}

// DeleteCamp handles DELETE /delete-camp/:campId (admin only).
func (h *Handler) DeleteCamp(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	deleted, err := h.Store.Delete(r.Context(), ps.ByName("campId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete camp")
		return
	}
	h.Cache.Invalidate(r.Context(), rdx.KeyPopularCamps, rdx.KeyGlobalStats)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deletedCount": deleted})
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		return utils.ParseFloat(n)
	default:
		return 0
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		return utils.ParseInt(n)
	default:
		return 0
	}
}

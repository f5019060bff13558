package registrations

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"carecamps/middleware"
	"carecamps/models"
	"carecamps/rdx"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
)

type registrationStore interface {
	Upsert(ctx context.Context, reg models.Registration) (inserted bool, err error)
	List(ctx context.Context, q Query) ([]models.Registration, error)
	Count(ctx context.Context, q Query) (int64, error)
	Get(ctx context.Context, id string) (*models.Registration, error)
	GetByFindingKey(ctx context.Context, findingKey string) (*models.Registration, error)
	Delete(ctx context.Context, id string) (int64, error)
	Confirm(ctx context.Context, findingKey string) (int64, error)
	MarkPaid(ctx context.Context, findingKey string) (int64, error)
}

// Notifier sends the participant a confirmation notice; failures are
// logged, never surfaced.
type Notifier interface {
	SendConfirmation(to, campName string) error
}

type Handler struct {
	Store  registrationStore
	Cache  *rdx.Cache
	Notify Notifier
}

func NewHandler(store *Store, cache *rdx.Cache, notify Notifier) *Handler {
	return &Handler{Store: store, Cache: cache, Notify: notify}
}

// UpsertRegistration handles PUT /registeredCamps (self). The
// participant identity comes from the verified token, the rest from the
// body; the camp counter moves only when a new row is created.
func (h *Handler) UpsertRegistration(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := middleware.EmailFromContext(r.Context())

	var body struct {
		CampID          string `json:"campId"`
		CampName        string `json:"campName"`
		ParticipantName string `json:"participantName"`
		Fees            any    `json:"fees"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.CampID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid registration data")
		return
	}

	reg := models.Registration{
		FindingKey:       models.FindingKey(email, body.CampID),
		CampID:           body.CampID,
		CampName:         body.CampName,
		ParticipantEmail: email,
		ParticipantName:  body.ParticipantName,
		Fees:             toFloat(body.Fees),
	}

	inserted, err := h.Store.Upsert(r.Context(), reg)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save registration")
		return
	}
	if inserted {
		h.Cache.Invalidate(r.Context(), rdx.KeyPopularCamps, rdx.KeyGlobalStats)
	}

	upsertedCount := 0
	if inserted {
		upsertedCount = 1
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"upsertedCount": upsertedCount,
		"matchedCount":  1 - upsertedCount,
	})
}

// GetRegistrations handles GET /registeredCamps (self): the caller's
// paginated, searchable registration list.
func (h *Handler) GetRegistrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, PageSize)
	h.list(w, r, Query{
		Key:              r.URL.Query().Get("searchKey"),
		ParticipantEmail: middleware.EmailFromContext(r.Context()),
		Skip:             skip,
		Limit:            limit,
	})
}

// GetAllRegistrations handles GET /registeredCamps/all (self): the
// unpaginated list the payment page works from.
func (h *Handler) GetAllRegistrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, Query{ParticipantEmail: middleware.EmailFromContext(r.Context())})
}

// GetRegistrationsAdmin handles GET /registeredCamps/admin: every
// registration, paginated and searchable.
func (h *Handler) GetRegistrationsAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, PageSize)
	h.list(w, r, Query{
		Key:   r.URL.Query().Get("searchKey"),
		Skip:  skip,
		Limit: limit,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, q Query) {
	regs, err := h.Store.List(r.Context(), q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch registrations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, regs)
}

// GetRegistrationsCount handles GET /registeredCamps/count (self).
func (h *Handler) GetRegistrationsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.count(w, r, Query{
		Key:              r.URL.Query().Get("searchKey"),
		ParticipantEmail: middleware.EmailFromContext(r.Context()),
	})
}

// GetRegistrationsAdminCount handles GET /registeredCamps/admin/count.
func (h *Handler) GetRegistrationsAdminCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.count(w, r, Query{Key: r.URL.Query().Get("searchKey")})
}

func (h *Handler) count(w http.ResponseWriter, r *http.Request, q Query) {
	count, err := h.Store.Count(r.Context(), q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch registration count")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}

// CancelRegistration handles DELETE /cancel-registration/:id (self) and
// DELETE /admin/cancel-registration/:id.
func (h *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	deleted, err := h.Store.Delete(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel registration")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deletedCount": deleted})
}

// ConfirmRegistration handles PATCH /registeredCamps/admin/status: the
// exactly-once confirmation transition. The second call on the same
// findingKey reports zero modified documents.
func (h *Handler) ConfirmRegistration(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		FindingKey string `json:"findingKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FindingKey == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "findingKey is required")
		return
	}

	modified, err := h.Store.Confirm(r.Context(), body.FindingKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to confirm registration")
		return
	}

	if modified > 0 && h.Notify != nil {
		if reg, err := h.Store.GetByFindingKey(r.Context(), body.FindingKey); err == nil && reg != nil {
			go func(to, campName string) {
				if err := h.Notify.SendConfirmation(to, campName); err != nil {
					log.Println("confirmation mail failed:", err)
				}
			}(reg.ParticipantEmail, reg.CampName)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"modifiedCount": modified})
}

// MarkPaymentPaid handles PATCH /registeredCamps/payment (self), the
// exactly-once payment transition.
func (h *Handler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		FindingKey string `json:"findingKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FindingKey == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "findingKey is required")
		return
	}

	modified, err := h.Store.MarkPaid(r.Context(), body.FindingKey)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update payment status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"modifiedCount": modified})
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

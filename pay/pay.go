package pay

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"

	"carecamps/middleware"
	"carecamps/models"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type payStore interface {
	Insert(ctx context.Context, payment models.Payment) (primitive.ObjectID, error)
	List(ctx context.Context, q Query) ([]models.Payment, error)
	Count(ctx context.Context, q Query) (int64, error)
}

// IntentCreator is the contract the payment processor wrapper fulfils.
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64) (clientSecret string, err error)
}

type Handler struct {
	Store   payStore
	Intents IntentCreator
}

func NewHandler(store *Store, intents IntentCreator) *Handler {
	return &Handler{Store: store, Intents: intents}
}

// CreatePaymentIntent handles POST /createPaymentIntent (self). The
// fees arrive in dollars; the processor wants integer cents. Processor
// failures surface on the generic 500 path, matching the error
// taxonomy: no retry, no local recovery.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Fees any `json:"fees"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment data")
		return
	}

	fees := toFloat(body.Fees)
	if fees <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Fees must be positive")
		return
	}
	amount := int64(math.Round(fees * 100))

	clientSecret, err := h.Intents.CreatePaymentIntent(r.Context(), amount)
	if err != nil {
		log.Println("payment intent error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create payment intent")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"clientSecret": clientSecret})
}

// RecordPayment handles POST /payments (self): the append-only record
// written after the browser-side confirmation succeeds.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := middleware.EmailFromContext(r.Context())

	var payment models.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil || payment.CampID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment data")
		return
	}

	payment.ID = primitive.NilObjectID
	payment.PaidBy = email
	payment.FindingKey = models.FindingKey(email, payment.CampID)
	payment.PaymentStatus = models.StatusPaid
	if payment.TransactionID == "" {
		payment.TransactionID = utils.GetUUID()
	}

	id, err := h.Store.Insert(r.Context(), payment)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"insertedId": id.Hex()})
}

// GetPayments handles GET /payments (self): the caller's payment
// history, searchable by camp name.
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	skip, limit := utils.ParsePagination(r, PageSize)
	q := Query{
		Key:    r.URL.Query().Get("searchKey"),
		PaidBy: middleware.EmailFromContext(r.Context()),
		Skip:   skip,
		Limit:  limit,
	}

	payments, err := h.Store.List(r.Context(), q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}

// GetPaymentsCount handles GET /payments/count (self).
func (h *Handler) GetPaymentsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := Query{
		Key:    r.URL.Query().Get("searchKey"),
		PaidBy: middleware.EmailFromContext(r.Context()),
	}
	count, err := h.Store.Count(r.Context(), q)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payment count")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
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

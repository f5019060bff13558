package subscribers

import (
	"context"
	"encoding/json"
	"net/http"

	"carecamps/models"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type subscriberStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, sub models.Subscriber) error
}

type Store struct {
	Subscribers *mongo.Collection
}

func NewStore(subscribers *mongo.Collection) *Store {
	return &Store{Subscribers: subscribers}
}

func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	count, err := s.Subscribers.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Insert(ctx context.Context, sub models.Subscriber) error {
	_, err := s.Subscribers.InsertOne(ctx, sub)
	return err
}

type Handler struct {
	Store subscriberStore
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// Subscribe handles POST /subscriber: explicit existence check, then a
// conditional insert. A duplicate signup writes nothing and reports the
// existing subscription.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var sub models.Subscriber
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil || sub.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email is required")
		return
	}

	exists, err := h.Store.Exists(r.Context(), sub.Email)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check subscription")
		return
	}
	if exists {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"exists": true, "message": "Already subscribed"})
		return
	}

	if err := h.Store.Insert(r.Context(), sub); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"exists": false, "message": "Subscribed"})
}

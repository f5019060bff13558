package contact

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"carecamps/models"
	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sender is the mail relay contract; the mailer package fulfils it.
type Sender interface {
	SendContact(msg models.ContactMessage) error
}

type messageStore interface {
	Insert(ctx context.Context, msg models.ContactMessage) error
}

type Store struct {
	Messages *mongo.Collection
}

func NewStore(messages *mongo.Collection) *Store {
	return &Store{Messages: messages}
}

func (s *Store) Insert(ctx context.Context, msg models.ContactMessage) error {
	_, err := s.Messages.InsertOne(ctx, msg)
	return err
}

type Handler struct {
	Store messageStore
	Mail  Sender
}

func NewHandler(store *Store, mail Sender) *Handler {
	return &Handler{Store: store, Mail: mail}
}

// SendMessage handles POST /contact: the message is stored, then
// relayed by mail. A relay failure is reported in the payload rather
// than failing the request; the message is already persisted.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil || msg.Email == "" || msg.Body == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and message are required")
		return
	}
	msg.MessageID = utils.GetUUID()

	if err := h.Store.Insert(r.Context(), msg); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store message")
		return
	}

	if err := h.Mail.SendContact(msg); err != nil {
		log.Println("contact mail failed:", err)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "error", "messageId": msg.MessageID})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "sent", "messageId": msg.MessageID})
}

package auth

import (
	"encoding/json"
	"net/http"

	"carecamps/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Tokens *TokenService
}

func NewHandler(tokens *TokenService) *Handler {
	return &Handler{Tokens: tokens}
}

// IssueToken handles POST /auth. The client sends the identity payload
// it got from its federated login; we mint a 1h token for it.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid identity payload")
		return
	}

	token, err := h.Tokens.Issue(payload.Email, payload.Name)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token})
}

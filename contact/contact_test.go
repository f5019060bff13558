package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carecamps/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMsgStore struct {
	stored []models.ContactMessage
}

func (f *fakeMsgStore) Insert(_ context.Context, msg models.ContactMessage) error {
	f.stored = append(f.stored, msg)
	return nil
}

type fakeSender struct {
	sent []models.ContactMessage
	err  error
}

func (f *fakeSender) SendContact(msg models.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestSendMessageRelaysMail(t *testing.T) {
	store := &fakeMsgStore{}
	sender := &fakeSender{}
	h := &Handler{Store: store, Mail: sender}

	rec := httptest.NewRecorder()
	body := `{"name":"Pat","email":"p@x.com","subject":"hi","message":"hello","body":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	h.SendMessage(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.stored, 1)
	require.Len(t, sender.sent, 1)
	assert.NotEmpty(t, store.stored[0].MessageID)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sent", resp["status"])
}

func TestSendMessageMailFailureIsReportedNotFatal(t *testing.T) {
	store := &fakeMsgStore{}
	h := &Handler{Store: store, Mail: &fakeSender{err: errors.New("smtp down")}}

	rec := httptest.NewRecorder()
	body := `{"name":"Pat","email":"p@x.com","body":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	h.SendMessage(rec, req, nil)

	// The message is persisted; only the relay status differs.
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.stored, 1)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
}

func TestSendMessageRequiresEmailAndBody(t *testing.T) {
	h := &Handler{Store: &fakeMsgStore{}, Mail: &fakeSender{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Pat"}`))
	h.SendMessage(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

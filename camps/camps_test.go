package camps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carecamps/globals"
	"carecamps/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCampStore struct {
	inserted   []models.Camp
	lastSearch SearchQuery
	camps      []models.Camp
	getResult  *models.Camp
	updates    map[string]bson.M
	deleted    []string
}

func (f *fakeCampStore) Search(_ context.Context, q SearchQuery) ([]models.Camp, error) {
	f.lastSearch = q
	return f.camps, nil
}

func (f *fakeCampStore) Count(_ context.Context, q SearchQuery) (int64, error) {
	return int64(len(f.camps)), nil
}

func (f *fakeCampStore) Popular(_ context.Context, limit int64) ([]models.Camp, error) {
	if int64(len(f.camps)) > limit {
		return f.camps[:limit], nil
	}
	return f.camps, nil
}

func (f *fakeCampStore) Get(_ context.Context, id string) (*models.Camp, error) {
	return f.getResult, nil
}

func (f *fakeCampStore) Insert(_ context.Context, camp models.Camp) (primitive.ObjectID, error) {
	f.inserted = append(f.inserted, camp)
	return primitive.NewObjectID(), nil
}

func (f *fakeCampStore) Update(_ context.Context, id string, fields bson.M) (int64, error) {
	if f.updates == nil {
		f.updates = map[string]bson.M{}
	}
	f.updates[id] = fields
	return 1, nil
}

func (f *fakeCampStore) Delete(_ context.Context, id string) (int64, error) {
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func asAdmin(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), globals.EmailKey, email))
}

func TestCreateCampNormalizesFields(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	body := `{"campName":"Health Drive","location":"Riverside","professionalName":"Dr. Lee",` +
		`"fees":"20","participantCount":"0","dateTime":"2024-01-01"}`
	rec := httptest.NewRecorder()
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/camps?email=admin@x.com", strings.NewReader(body)), "admin@x.com")
	h.CreateCamp(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.inserted, 1)

	camp := store.inserted[0]
	assert.Equal(t, "Health Drive", camp.Name)
	assert.Equal(t, 20.0, camp.Fees)
	assert.Equal(t, 0, camp.ParticipantCount)
	assert.Equal(t, "January 1, 2024 12:00 AM", camp.DateTime)
	assert.Equal(t, "admin@x.com", camp.AddedBy)
}

func TestCreateCampAcceptsNumericTypes(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	body := `{"campName":"Vision Camp","fees":35.5,"participantCount":12,"dateTime":"2024-06-10T09:00"}`
	rec := httptest.NewRecorder()
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/camps", strings.NewReader(body)), "admin@x.com")
	h.CreateCamp(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, 35.5, store.inserted[0].Fees)
	assert.Equal(t, 12, store.inserted[0].ParticipantCount)
}

func TestCreateCampRequiresName(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	rec := httptest.NewRecorder()
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/camps", strings.NewReader(`{"fees":"5"}`)), "admin@x.com")
	h.CreateCamp(rec, req, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserted)
}

func TestGetCampsPassesSearchAndPage(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/camps?searchKey=river&page=2&sortParam=fees", nil)
	h.GetCamps(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "river", store.lastSearch.Key)
	assert.Equal(t, "fees", store.lastSearch.SortField)
	assert.Equal(t, int64(6), store.lastSearch.Skip)
	assert.Equal(t, int64(6), store.lastSearch.Limit)
	assert.Empty(t, store.lastSearch.Owner)
}

func TestGetOwnerCampsRestrictsToCaller(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	rec := httptest.NewRecorder()
	req := asAdmin(httptest.NewRequest(http.MethodGet, "/camps/owner?email=admin@x.com", nil), "admin@x.com")
	h.GetOwnerCamps(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@x.com", store.lastSearch.Owner)
}

func TestGetCampMissRespondsNull(t *testing.T) {
	h := &Handler{Store: &fakeCampStore{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/camp-details/deadbeef", nil)
	h.GetCamp(rec, req, httprouter.Params{{Key: "campId", Value: "deadbeef"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestUpdateCampNormalizesAndStripsProtectedFields(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	body := `{"fees":"25","dateTime":"2024-02-02","addedBy":"evil@x.com","_id":"123"}`
	rec := httptest.NewRecorder()
	req := asAdmin(httptest.NewRequest(http.MethodPatch, "/update-camp/abc", strings.NewReader(body)), "admin@x.com")
	h.UpdateCamp(rec, req, httprouter.Params{{Key: "campId", Value: "abc"}})

	require.Equal(t, http.StatusOK, rec.Code)
	fields := store.updates["abc"]
	assert.Equal(t, 25.0, fields["fees"])
	assert.Equal(t, "February 2, 2024 12:00 AM", fields["dateTime"])
	assert.NotContains(t, fields, "addedBy")
	assert.NotContains(t, fields, "_id")
}

func TestDeleteCamp(t *testing.T) {
	store := &fakeCampStore{}
	h := &Handler{Store: store}

	rec := httptest.NewRecorder()
	req := asAdmin(httptest.NewRequest(http.MethodDelete, "/delete-camp/abc", nil), "admin@x.com")
	h.DeleteCamp(rec, req, httprouter.Params{{Key: "campId", Value: "abc"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc"}, store.deleted)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp["deletedCount"])
}

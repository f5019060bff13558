package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carecamps/globals"
	"carecamps/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewStore struct {
	reviews map[string]models.Review
}

func (f *fakeReviewStore) Upsert(_ context.Context, review models.Review) (bool, error) {
	_, existed := f.reviews[review.FindingKey]
	f.reviews[review.FindingKey] = review
	return !existed, nil
}

func (f *fakeReviewStore) List(_ context.Context) ([]models.Review, error) {
	out := []models.Review{}
	for _, r := range f.reviews {
		out = append(out, r)
	}
	return out, nil
}

func asUser(r *http.Request, email string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), globals.EmailKey, email))
}

func TestUpsertReviewLastWriteWins(t *testing.T) {
	store := &fakeReviewStore{reviews: map[string]models.Review{}}
	h := &Handler{Store: store}

	put := func(body string) map[string]int {
		rec := httptest.NewRecorder()
		req := asUser(httptest.NewRequest(http.MethodPut, "/reviews?email=p@x.com", strings.NewReader(body)), "p@x.com")
		h.UpsertReview(rec, req, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	resp := put(`{"campId":"C1","rating":4,"comment":"good"}`)
	assert.Equal(t, 1, resp["upsertedCount"])

	resp = put(`{"campId":"C1","rating":2,"comment":"changed my mind"}`)
	assert.Equal(t, 0, resp["upsertedCount"])

	require.Len(t, store.reviews, 1, "one review per (user, camp) pair")
	review := store.reviews["p@x.comC1"]
	assert.Equal(t, 2, review.Rating)
	assert.Equal(t, "p@x.com", review.Email)
}

func TestUpsertReviewValidatesRating(t *testing.T) {
	h := &Handler{Store: &fakeReviewStore{reviews: map[string]models.Review{}}}

	for _, body := range []string{
		`{"campId":"C1","rating":0,"comment":"x"}`,
		`{"campId":"C1","rating":6,"comment":"x"}`,
		`{"campId":"C1","rating":3,"comment":""}`,
		`{"rating":3,"comment":"x"}`,
	} {
		rec := httptest.NewRecorder()
		req := asUser(httptest.NewRequest(http.MethodPut, "/reviews", strings.NewReader(body)), "p@x.com")
		h.UpsertReview(rec, req, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/repository"
	"practicas/internal/service"
)

// recorded captures the last request the fake upstream saw.
type recorded struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

func newFakeUpstream(t *testing.T, status int, response interface{}) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Auth = r.Header.Get("Authorization")
		rec.Body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, "upstream-token"), rec
}

func TestGetOfferMapsNotFound(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusNotFound, map[string]string{"error": "offer not found"})

	_, err := client.GetOffer(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
	assert.Equal(t, "/offers/42", rec.Path)
}

func TestGetOfferSendsBearerToken(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusOK, model.Offer{ID: 42, Title: "QA Intern"})

	offer, err := client.GetOffer(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), offer.ID)
	assert.Equal(t, "QA Intern", offer.Title)
	assert.Equal(t, "Bearer upstream-token", rec.Auth)
}

func TestListOffersEncodesFilter(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusOK, []model.Offer{})

	_, err := client.ListOffers(context.Background(), repository.OfferFilter{
		Status:    model.OfferStatusApproved,
		CompanyID: 7,
		Search:    "backend",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/offers", rec.Path)
	assert.Contains(t, rec.Query, "status=approved")
	assert.Contains(t, rec.Query, "company_id=7")
	assert.Contains(t, rec.Query, "search=backend")
}

func TestApplyPostsSnapshot(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusCreated, model.Application{
		ID:      1,
		OfferID: 3,
		Status:  model.ApplicationStatusPending,
	})

	snapshot := model.ProfileSnapshot{
		Name:      "Juan Pérez Estudiante",
		Email:     "estudiante@pascualbravo.edu.co",
		StudentID: "1234567890",
	}
	app, err := client.Apply(context.Background(), 3, 42, snapshot)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/offers/3/apply", rec.Path)

	var sent applyRequest
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	assert.Equal(t, uint(42), sent.StudentID)
	assert.Equal(t, snapshot, sent.ProfileSnapshot)
}

func TestAdminReviewBody(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusOK, model.Application{ID: 5, Status: model.ApplicationStatusApproved})

	teacherID := uint(4)
	_, err := client.AdminReview(context.Background(), 5, model.ApplicationStatusApproved, service.AdminReviewOptions{
		AssignedTeacherID: &teacherID,
	})
	require.NoError(t, err)

	assert.Equal(t, "/applications/5/admin-review", rec.Path)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	assert.Equal(t, "approved", sent["status"])
	assert.Equal(t, float64(4), sent["assigned_teacher_id"])
	// Unset start date must not be sent at all.
	_, hasStart := sent["start_date"]
	assert.False(t, hasStart)
}

func TestUpdateOfferOmitsUnsetFields(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusOK, model.Offer{ID: 9})

	title := "QA Intern Senior"
	_, err := client.UpdateOffer(context.Background(), 9, service.OfferUpdate{Title: &title})
	require.NoError(t, err)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	assert.Equal(t, map[string]interface{}{"title": "QA Intern Senior"}, sent)
}

func TestDeleteOfferTreatsMissingAsNoOp(t *testing.T) {
	client, _ := newFakeUpstream(t, http.StatusNotFound, nil)

	assert.NoError(t, client.DeleteOffer(context.Background(), 9))
}

func TestListAllStatusQuery(t *testing.T) {
	client, rec := newFakeUpstream(t, http.StatusOK, []model.Application{})

	_, err := client.ListAll(context.Background(), model.ApplicationStatusCompanyAccepted)
	require.NoError(t, err)
	assert.Equal(t, "/applications", rec.Path)
	assert.Equal(t, "status=company_accepted", rec.Query)

	_, err = client.ListAll(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, rec.Query)
}

func TestUpstreamErrorSurfacesStatusAndBody(t *testing.T) {
	client, _ := newFakeUpstream(t, http.StatusInternalServerError, map[string]string{"error": "boom"})

	_, err := client.AdminMetrics(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_ParsesEnvelope(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{"id": 1, "name": "active"}, {"id": 2, "name": "retired"}],
			"meta": {"page": 2, "total_pages": 3, "total": 5}
		}`))
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("catalog", "api_statuses")
	page, err := col.List(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "/v1/catalog/api_statuses", gotPath)
	assert.Equal(t, "page=2", gotQuery)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "active", page.Items[0]["name"])
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Record not found"}`))
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("catalog", "apis")
	_, err := col.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_SendsPayloadAndBearerToken(t *testing.T) {
	var gotAuth string
	var gotBody Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {"id": 7, "name": "payments-api"}}`))
	}))
	defer srv.Close()

	col := New(srv.URL, WithToken("tok-abc")).Collection("catalog", "apis")
	rec, err := col.Create(context.Background(), Record{"name": "payments-api"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "payments-api", gotBody["name"])
	assert.Equal(t, float64(7), rec["id"])
}

func TestCreate_ValidationErrorsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors": {"name": ["is required"], "url": ["must not exceed 255 characters"]}}`))
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("catalog", "apis")
	_, err := col.Create(context.Background(), Record{})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"is required"}, ve.Fields["name"])
	assert.Len(t, ve.Fields, 2)
}

func TestDelete_ConflictCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "record is still referenced by apis"}`))
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("catalog", "api_statuses")
	err := col.Delete(context.Background(), 1)

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "referenced by apis")
}

func TestDelete_NoContentSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/catalog/api_statuses/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("catalog", "api_statuses")
	assert.NoError(t, col.Delete(context.Background(), 3))
}

func TestServerErrorSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Internal error"}`))
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("catalog", "apis")
	_, err := col.Get(context.Background(), 1)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.Equal(t, "Internal error", ae.Message)
}

func TestUpdate_PutsToRecordPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/infrastructure/environments/12", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": 12, "name": "staging"}}`))
	}))
	defer srv.Close()

	col := New(srv.URL).Collection("infrastructure", "environments")
	rec, err := col.Update(context.Background(), 12, Record{"name": "staging"})
	require.NoError(t, err)
	assert.Equal(t, "staging", rec["name"])
}

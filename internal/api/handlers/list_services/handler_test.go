package list_services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/domain"
)

type fakeRepo struct {
	services   []*domain.Service
	err        error
	activeOnly bool
}

func (f *fakeRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	f.activeOnly = activeOnly
	return f.services, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	repo := &fakeRepo{services: []*domain.Service{
		{ID: 1, Name: "Haircut", DurationMinutes: 60, Price: decimal.RequireFromString("1500.5"), IsActive: true},
	}}

	rec := httptest.NewRecorder()
	NewHandler(repo, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.activeOnly)

	var body []ServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "1500.50", body[0].Price)
}

func TestHandle_IncludeInactive(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(repo, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services?includeInactive=true", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services?includeInactive=true", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), 1, true))
	rec = httptest.NewRecorder()
	h.Handle(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, repo.activeOnly)
}

func TestHandle_RepositoryError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeRepo{err: errors.New("db down")}, nopLogger{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

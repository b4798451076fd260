package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

type fakeService struct {
	err       error
	reference string
	actor     models.Actor
}

func (f *fakeService) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.BookingResponse, error) {
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id}, nil
}

func (f *fakeService) GetByReference(ctx context.Context, reference string, actor models.Actor) (*models.BookingResponse, error) {
	f.reference = reference
	f.actor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: 1, Reference: reference}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc *fakeService, userID int64, isAdmin bool) http.Handler {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/bookings/reference/{reference}", h.HandleByReference).Methods(http.MethodGet)
	r.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if userID > 0 {
			req = req.WithContext(middleware.WithUser(req.Context(), userID, isAdmin))
		}
		r.ServeHTTP(w, req)
	})
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	newRouter(svc, 10, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Actor{UserID: 10, IsAdmin: true}, svc.actor)
}

func TestHandleByReference_Uppercases(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	newRouter(svc, 10, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/reference/ada-1234", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ADA-1234", svc.reference)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		userID int64
		err    error
		status int
	}{
		{"invalid id", "/bookings/abc", 10, nil, http.StatusBadRequest},
		{"no user", "/bookings/5", 0, nil, http.StatusUnauthorized},
		{"not found", "/bookings/5", 10, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "/bookings/reference/ADA-1234", 10, bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/bookings/reference/ADA-1234", 10, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&fakeService{err: tt.err}, tt.userID, false).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

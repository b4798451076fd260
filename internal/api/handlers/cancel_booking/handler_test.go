package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

type fakeService struct {
	err       error
	bookingID int64
	got       *models.CancelBookingRequest
}

func (f *fakeService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	f.bookingID = bookingID
	f.got = req
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, id, body string, userID int64) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(body))
	}
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, false))
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_WithoutBody(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "7", "", 10)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), svc.bookingID)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(10), svc.got.Actor.UserID)
	assert.Nil(t, svc.got.CancellationReason)
}

func TestHandle_WithReason(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "7", `{"cancellationReason":"заболел"}`, 10)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, svc.got.CancellationReason)
	assert.Equal(t, "заболел", *svc.got.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		userID int64
		err    error
		status int
	}{
		{"invalid id", "abc", 10, nil, http.StatusBadRequest},
		{"no user", "7", 0, nil, http.StatusUnauthorized},
		{"not found", "7", 10, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "7", 10, bookings.ErrAccessDenied, http.StatusForbidden},
		{"already completed", "7", 10, bookings.ErrCannotCancel, http.StatusConflict},
		{"reason too long", "7", 10, bookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "7", 10, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, "", tt.userID)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

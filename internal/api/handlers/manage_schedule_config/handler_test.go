package manage_schedule_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/service/schedule"
	"github.com/m04kA/SMC-SalonService/internal/service/schedule/models"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Create(ctx context.Context, req *models.CreateConfigRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfigResponse), args.Error(1)
}

func (m *MockScheduleService) Update(ctx context.Context, id int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfigResponse), args.Error(1)
}

func (m *MockScheduleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc *MockScheduleService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/schedule-configs", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/schedule-configs/{configId}", h.HandleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/schedule-configs/{configId}", h.HandleDelete).Methods(http.MethodDelete)
	return r
}

func TestHandleCreate(t *testing.T) {
	svc := new(MockScheduleService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateConfigRequest) bool {
		return req.OpenTime == "10:00" && req.Weekday != nil && *req.Weekday == 6
	})).Return(&models.ConfigResponse{ID: 4, Level: "weekday"}, nil)

	body := `{"weekday":6,"openTime":"10:00","closeTime":"16:00","slotGranularityMinutes":30}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/schedule-configs", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"level":"weekday"`)
	svc.AssertExpectations(t)
}

func TestHandleCreate_AlreadyExists(t *testing.T) {
	svc := new(MockScheduleService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, schedule.ErrConfigAlreadyExists)

	body := `{"openTime":"09:00","closeTime":"18:00","slotGranularityMinutes":30}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/schedule-configs", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleUpdate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", schedule.ErrConfigNotFound, http.StatusNotFound},
		{"invalid", schedule.ErrInvalidInput, http.StatusBadRequest},
		{"internal", schedule.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockScheduleService)
			svc.On("Update", mock.Anything, int64(4), mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/schedule-configs/4", strings.NewReader(`{"isOpen":false}`))
			newRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleDelete(t *testing.T) {
	svc := new(MockScheduleService)
	svc.On("Delete", mock.Anything, int64(4)).Return(nil)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/schedule-configs/4", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)

	rec = httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/schedule-configs/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

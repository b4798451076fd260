package manage_coupons

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

	"github.com/m04kA/SMC-SalonService/internal/service/coupons"
	"github.com/m04kA/SMC-SalonService/internal/service/coupons/models"
)

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CouponResponse), args.Error(1)
}

func (m *MockCouponService) GetByCode(ctx context.Context, code string) (*models.CouponResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CouponResponse), args.Error(1)
}

func (m *MockCouponService) SetActive(ctx context.Context, code string, active bool) (*models.CouponResponse, error) {
	args := m.Called(ctx, code, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CouponResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(svc *MockCouponService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/coupons", h.HandleCreate).Methods(http.MethodPost)
	r.HandleFunc("/coupons/{code}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/coupons/{code}/active", h.HandleSetActive).Methods(http.MethodPatch)
	return r
}

func TestHandleCreate(t *testing.T) {
	svc := new(MockCouponService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateCouponRequest) bool {
		return req.Code == "SAVE20" && req.DiscountType == "percentage" && req.DiscountValue == "20"
	})).Return(&models.CouponResponse{ID: 1, Code: "SAVE20", IsActive: true}, nil)

	body := `{"code":"SAVE20","discountType":"percentage","discountValue":"20"}`
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/coupons", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate", coupons.ErrCouponAlreadyExists, http.StatusConflict},
		{"invalid", coupons.ErrInvalidInput, http.StatusBadRequest},
		{"internal", coupons.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCouponService)
			svc.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			body := `{"code":"SAVE20","discountType":"percentage","discountValue":"20"}`
			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/coupons", strings.NewReader(body)))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	svc := new(MockCouponService)
	svc.On("GetByCode", mock.Anything, "NOPE").Return(nil, coupons.ErrCouponNotFound)

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/coupons/NOPE", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSetActive(t *testing.T) {
	svc := new(MockCouponService)
	svc.On("SetActive", mock.Anything, "SAVE20", false).Return(&models.CouponResponse{ID: 1, Code: "SAVE20"}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/coupons/SAVE20/active", strings.NewReader(`{"isActive":false}`))
	newRouter(svc).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/coupons/SAVE20/active", strings.NewReader(`{}`))
	newRouter(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

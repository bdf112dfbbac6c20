package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"culturevault/pkg/registry"
	"culturevault/pkg/response"
)

type mockPricingService struct {
	mock.Mock
}

func (m *mockPricingService) Price(ctx context.Context, assetID int64) (Quote, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(Quote), args.Error(1)
}

func (m *mockPricingService) CurrentWeights(ctx context.Context) (Weights, error) {
	args := m.Called(ctx)
	return args.Get(0).(Weights), args.Error(1)
}

func setupPricingRouter(service PricingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPricingHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestPricingHandler_GetPrice_Success(t *testing.T) {
	svc := new(mockPricingService)
	r := setupPricingRouter(svc)

	svc.On("Price", mock.Anything, int64(1)).Return(Quote{AssetID: 1, UnitPrice: 14000}, nil)

	req := httptest.NewRequest(http.MethodGet, "/assets/1/price", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(14000), data["unit_price"])
}

func TestPricingHandler_GetPrice_NotFound(t *testing.T) {
	svc := new(mockPricingService)
	r := setupPricingRouter(svc)

	svc.On("Price", mock.Anything, int64(99)).Return(Quote{}, registry.ErrAssetNotFound)

	req := httptest.NewRequest(http.MethodGet, "/assets/99/price", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPricingHandler_GetPrice_Overflow(t *testing.T) {
	svc := new(mockPricingService)
	r := setupPricingRouter(svc)

	svc.On("Price", mock.Anything, int64(2)).Return(Quote{}, ErrArithmeticOverflow)

	req := httptest.NewRequest(http.MethodGet, "/assets/2/price", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPricingHandler_GetPrice_InvalidID(t *testing.T) {
	svc := new(mockPricingService)
	r := setupPricingRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/assets/abc/price", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Price", mock.Anything, mock.Anything)
}

func TestPricingHandler_GetWeights(t *testing.T) {
	svc := new(mockPricingService)
	r := setupPricingRouter(svc)

	svc.On("CurrentWeights", mock.Anything).Return(Weights{Alpha: 100, Beta: 50, Gamma: 20}, nil)

	req := httptest.NewRequest(http.MethodGet, "/governance/weights", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(100), data["alpha"])
	require.Equal(t, float64(50), data["beta"])
	require.Equal(t, float64(20), data["gamma"])
}

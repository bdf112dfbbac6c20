package pricing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturevault/pkg/registry"
	"culturevault/pkg/response"
)

type PricingHandler struct {
	service PricingService
}

func NewPricingHandler(service PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

func (h *PricingHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/assets/:id/price", h.getPrice)
	router.GET("/governance/weights", h.getWeights)
}

// @Summary      Quote current unit price
// @Description  Computes alpha*culturalValue + beta*accessCount + gamma*marketValue from live signals. The quote is informational; settlement recomputes inside its transaction.
// @Tags         pricing
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=pricing.Quote}
// @Failure      400  {object}  response.APIResponse "Invalid asset ID"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      422  {object}  response.APIResponse "Arithmetic overflow"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id}/price [get]
func (h *PricingHandler) getPrice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset id", nil)
		return
	}

	quote, err := h.service.Price(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, registry.ErrAssetNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
			return
		}
		if errors.Is(err, ErrArithmeticOverflow) {
			response.SendAPIResponse(c, http.StatusUnprocessableEntity, false, err.Error(), nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "price quoted", quote)
}

// @Summary      Get current pricing weights
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=pricing.Weights}
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /governance/weights [get]
func (h *PricingHandler) getWeights(c *gin.Context) {
	w, err := h.service.CurrentWeights(c.Request.Context())
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "weights retrieved", w)
}

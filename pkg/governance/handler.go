package governance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturevault/pkg/registry"
	"culturevault/pkg/response"
)

const (
	headerAuthorityAddress = "X-Authority-Address"
	headerAuthorityKey     = "X-Authority-Key"
)

type GovernanceHandler struct {
	service GovernanceService
}

func NewGovernanceHandler(service GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{service: service}
}

func (h *GovernanceHandler) RegisterRoutes(router *gin.Engine) {
	router.PUT("/governance/assets/:id/market-value", h.setMarketValue)
	router.PUT("/governance/weights", h.setWeights)
}

type setMarketValueRequest struct {
	Value int64 `json:"value"`
}

type setWeightsRequest struct {
	Alpha int64 `json:"alpha"`
	Beta  int64 `json:"beta"`
	Gamma int64 `json:"gamma"`
}

// @Summary      Update an asset's market value
// @Description  Privileged oracle write. Overwrites the asset's market value signal wholesale; no history is retained.
// @Tags         governance
// @Accept       json
// @Produce      json
// @Param        id                   path      int                    true  "Asset ID"
// @Param        X-Authority-Address  header    string                 true  "Authority identity"
// @Param        X-Authority-Key      header    string                 true  "Authority key"
// @Param        request              body      setMarketValueRequest  true  "New market value"
// @Success      200  {object}  response.APIResponse "Market value updated"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      403  {object}  response.APIResponse "Unauthorized"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /governance/assets/{id}/market-value [put]
func (h *GovernanceHandler) setMarketValue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset id", nil)
		return
	}

	var req setMarketValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	caller := c.GetHeader(headerAuthorityAddress)
	key := c.GetHeader(headerAuthorityKey)

	if err := h.service.SetMarketValue(c.Request.Context(), caller, key, id, req.Value); err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			response.SendAPIResponse(c, http.StatusForbidden, false, err.Error(), nil)
		case errors.Is(err, registry.ErrAssetNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
		default:
			response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "market value updated", nil)
}

// @Summary      Replace pricing weights
// @Description  Privileged wholesale replacement of the alpha/beta/gamma pricing coefficients. In-flight price computations observe the new values immediately.
// @Tags         governance
// @Accept       json
// @Produce      json
// @Param        X-Authority-Address  header    string             true  "Authority identity"
// @Param        X-Authority-Key      header    string             true  "Authority key"
// @Param        request              body      setWeightsRequest  true  "New weight triple"
// @Success      200  {object}  response.APIResponse{data=pricing.Weights}
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      403  {object}  response.APIResponse "Unauthorized"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /governance/weights [put]
func (h *GovernanceHandler) setWeights(c *gin.Context) {
	var req setWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	caller := c.GetHeader(headerAuthorityAddress)
	key := c.GetHeader(headerAuthorityKey)

	w, err := h.service.SetWeights(c.Request.Context(), caller, key, req.Alpha, req.Beta, req.Gamma)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			response.SendAPIResponse(c, http.StatusForbidden, false, err.Error(), nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "pricing weights updated", w)
}

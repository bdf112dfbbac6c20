package purchase

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturevault/pkg/payments"
	"culturevault/pkg/pricing"
	"culturevault/pkg/registry"
	"culturevault/pkg/response"
)

type PurchaseHandler struct {
	service PurchaseService
}

func NewPurchaseHandler(service PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/assets/:id/purchase", h.buyAccessRights)
}

type buyRequest struct {
	Buyer         string `json:"buyer" binding:"required"`
	Amount        int64  `json:"amount" binding:"required"`
	FundsProvided int64  `json:"funds_provided"`
}

// @Summary      Purchase access credits
// @Description  Atomically charges the current unit price, issues credits to the buyer, bumps the asset's usage counter and forwards the supplied funds to the owner.
// @Tags         purchase
// @Accept       json
// @Produce      json
// @Param        id       path      int         true  "Asset ID"
// @Param        request  body      buyRequest  true  "Purchase order"
// @Success      200  {object}  response.APIResponse{data=purchase.Receipt}
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      402  {object}  response.APIResponse "Insufficient funds"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      422  {object}  response.APIResponse "Arithmetic overflow"
// @Failure      502  {object}  response.APIResponse "Funds transfer failed"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id}/purchase [post]
func (h *PurchaseHandler) buyAccessRights(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset id", nil)
		return
	}

	var req buyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	receipt, err := h.service.Buy(c.Request.Context(), id, req.Buyer, req.Amount, req.FundsProvided)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAssetNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
		case errors.Is(err, ErrInsufficientFunds):
			response.SendAPIResponse(c, http.StatusPaymentRequired, false, err.Error(), nil)
		case errors.Is(err, pricing.ErrArithmeticOverflow):
			response.SendAPIResponse(c, http.StatusUnprocessableEntity, false, err.Error(), nil)
		case errors.Is(err, payments.ErrTransferFailed):
			response.SendAPIResponse(c, http.StatusBadGateway, false, err.Error(), nil)
		case errors.Is(err, ErrInvalidOrder):
			response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		default:
			response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "access rights purchased", receipt)
}

package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturevault/pkg/registry"
	"culturevault/pkg/response"
)

type LedgerHandler struct {
	service LedgerService
}

func NewLedgerHandler(service LedgerService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/assets/:id/balances/:account", h.getBalance)
	router.POST("/assets/:id/consume", h.consume)
}

type consumeRequest struct {
	Account    string `json:"account" binding:"required"`
	ActionType string `json:"action_type"`
}

// @Summary      Get access credit balance
// @Tags         ledger
// @Produce      json
// @Param        id       path      int     true  "Asset ID"
// @Param        account  path      string  true  "Account identity"
// @Success      200  {object}  response.APIResponse{data=ledger.Balance}
// @Failure      400  {object}  response.APIResponse "Invalid asset ID"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id}/balances/{account} [get]
func (h *LedgerHandler) getBalance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset id", nil)
		return
	}

	b, err := h.service.BalanceOf(c.Request.Context(), id, c.Param("account"))
	if err != nil {
		if errors.Is(err, registry.ErrAssetNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "balance retrieved", b)
}

// @Summary      Consume one access credit
// @Description  Debits exactly one credit from the account's balance and emits an AccessConsumed receipt. Fails without side effects when the balance is empty.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Asset ID"
// @Param        request  body      consumeRequest  true  "Consumption request"
// @Success      200  {object}  response.APIResponse{data=ledger.ConsumptionReceipt}
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      409  {object}  response.APIResponse "Insufficient access rights"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id}/consume [post]
func (h *LedgerHandler) consume(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset id", nil)
		return
	}

	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	receipt, err := h.service.Consume(c.Request.Context(), id, req.Account, req.ActionType)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrAssetNotFound):
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
		case errors.Is(err, ErrInsufficientAccessRights):
			response.SendAPIResponse(c, http.StatusConflict, false, err.Error(), nil)
		default:
			response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		}
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "access credit consumed", receipt)
}

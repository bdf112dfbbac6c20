package registry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"culturevault/pkg/response"
)

type AssetHandler struct {
	service AssetService
}

func NewAssetHandler(service AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/assets", h.mintAsset)
	router.GET("/assets/:id", h.getAsset)
	router.GET("/assets", h.listAssets)
}

type mintAssetRequest struct {
	Title         string `json:"title" binding:"required"`
	MetadataURI   string `json:"metadata_uri" binding:"required"`
	CulturalValue int64  `json:"cultural_value"`
	Creator       string `json:"creator" binding:"required"`
	ContactEmail  string `json:"contact_email"`
}

// @Summary      Mint an asset
// @Description  Registers a digital asset with its immutable cultural value and creator. The creator becomes the initial owner.
// @Tags         registry
// @Accept       json
// @Produce      json
// @Param        asset  body      mintAssetRequest  true  "Asset to mint"
// @Success      201  {object}  response.APIResponse{data=registry.Asset}
// @Failure      400  {object}  response.APIResponse "Invalid request body"
// @Failure      409  {object}  response.APIResponse "Metadata URI already registered"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets [post]
func (h *AssetHandler) mintAsset(c *gin.Context) {
	var req mintAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request body", nil)
		return
	}

	created, err := h.service.MintAsset(c.Request.Context(), Asset{
		Title:         req.Title,
		MetadataURI:   req.MetadataURI,
		CulturalValue: req.CulturalValue,
		Creator:       req.Creator,
		ContactEmail:  req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateURI) {
			response.SendAPIResponse(c, http.StatusConflict, false, err.Error(), nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "asset minted", created)
}

// @Summary      Get asset by ID
// @Tags         registry
// @Produce      json
// @Param        id   path      int  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=registry.Asset}
// @Failure      400  {object}  response.APIResponse "Invalid asset ID"
// @Failure      404  {object}  response.APIResponse "Asset not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets/{id} [get]
func (h *AssetHandler) getAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid asset id", nil)
		return
	}

	a, err := h.service.GetAssetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "asset not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "asset retrieved", a)
}

// @Summary      List assets
// @Tags         registry
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200  {object}  response.APIResponse{data=registry.AssetList}
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /assets [get]
func (h *AssetHandler) listAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, total, err := h.service.ListAssets(c.Request.Context(), page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	response.SendAPIResponse(c, http.StatusOK, true, "assets listed", AssetList{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

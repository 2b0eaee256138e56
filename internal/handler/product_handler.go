package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rfpflow/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	catalogService service.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// List handles GET /api/v1/products
// @Summary List catalog products
// @Tags products
// @Produce json
// @Success 200 {object} APIResponse{data=[]domain.Product} "Catalog"
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, products)
}

// Create handles POST /api/v1/admin/products
// @Summary Add a catalog product
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.AddProductInput true "Product"
// @Success 201 {object} APIResponse{data=domain.Product} "Product created"
// @Failure 400 {object} APIResponse "Missing required fields"
// @Failure 409 {object} APIResponse "SKU already exists"
// @Security BearerAuth
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.AddProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "missing required product fields")
		return
	}

	product, err := h.catalogService.AddProduct(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, product)
}

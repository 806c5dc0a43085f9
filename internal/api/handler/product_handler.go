package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fiori/inventory-api/internal/core/domain"
	"github.com/fiori/inventory-api/internal/core/ports"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	service  ports.ProductService
	pageSize int
}

func NewProductHandler(service ports.ProductService, pageSize int) *ProductHandler {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &ProductHandler{service: service, pageSize: pageSize}
}

// Create handles POST /products/new. The creator is always the caller.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details (image is base64)"
// @Success      201   {object}  newProductResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products/new [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, err := principal(c)
	if err != nil {
		return err
	}
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		SellPrice:   req.SellingPrice,
		BuyPrice:    req.BuyingPrice,
		Qty:         req.Quantity,
		Mini:        req.Minimum,
		Maxi:        req.Maximum,
		Sold:        req.Sold,
		Image:       req.Image,
		CreatedBy:   userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newProductResponse{
		Success:    true,
		Message:    "product created successfully",
		NewProduct: p,
	})
}

// Edit handles PATCH /products/edit. Stock levels are rejected here; they
// only move through orders.
//
// @Summary      Edit a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/edit [patch]
func (h *ProductHandler) Edit(c echo.Context) error {
	var req editProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Quantity != nil {
		return fmt.Errorf("quantity changes only through orders: %w", domain.ErrInvalidInput)
	}

	p, err := h.service.Update(c.Request().Context(), req.ID, ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		SellPrice:   req.SellingPrice,
		BuyPrice:    req.BuyingPrice,
		Mini:        req.Minimum,
		Maxi:        req.Maximum,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{
		Success: true,
		Message: "product edited successfully",
		Product: p,
	})
}

// List handles GET /products/all/:page.
//
// @Summary      List products, newest first
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page  path      int  true  "1-based page number"
// @Success      200   {object}  productPageResponse
// @Failure      400   {object}  errorResponse
// @Router       /products/all/{page} [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}

	result, err := h.service.List(c.Request().Context(), page, h.pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productPageResponse{
		Success:  true,
		Products: result.Items,
		Page:     result.Page,
		Pages:    result.TotalPages,
		Total:    result.Total,
	})
}

// GetByID handles GET /products/search/id/:product_id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      int  true  "Product ID"
// @Success      200         {object}  productResponse
// @Failure      404         {object}  errorResponse
// @Router       /products/search/id/{product_id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := idParam(c, "product_id")
	if err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productResponse{Success: true, Product: p})
}

// Search handles GET /products/search/:search_term.
//
// @Summary      Search products by name or description
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        search_term  path      string  true  "Case-insensitive substring"
// @Success      200          {object}  productsResponse
// @Failure      400          {object}  errorResponse
// @Router       /products/search/{search_term} [get]
func (h *ProductHandler) Search(c echo.Context) error {
	term := c.Param("search_term")
	if unescaped, err := url.PathUnescape(term); err == nil {
		term = unescaped
	}

	products, err := h.service.Search(c.Request().Context(), term)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productsResponse{Success: true, Products: products})
}

// Delete handles DELETE /products/delete/:product_id.
//
// @Summary      Delete a product that no order references
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      int  true  "Product ID"
// @Success      200         {object}  messageResponse
// @Failure      404         {object}  errorResponse
// @Failure      409         {object}  errorResponse
// @Router       /products/delete/{product_id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "product_id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "product deleted successfully"})
}

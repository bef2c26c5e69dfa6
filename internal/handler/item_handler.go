package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "unimarket/internal/errors"
	"unimarket/internal/service"
)

// Listing defaults applied when the query parameters are absent.
const (
	defaultLimit  = 10
	defaultSortBy = "id"
	defaultOrder  = "asc"
)

// ItemHandler handles item CRUD and listing endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents an item creation request.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uint           `json:"category_id"`
}

// UpdateItemRequest represents a partial item update; absent fields stay
// unchanged.
type UpdateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *uint            `json:"category_id"`
}

// UploadResponse reports the stored image URL.
type UploadResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

// CreateItem godoc
// @Summary Create an item owned by the caller
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Item data"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) CreateItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), user, service.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// GetItem godoc
// @Summary Get a single item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := h.itemService.GetItem(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, toItemResponse(item))
}

// ListItems godoc
// @Summary List items with filtering, sorting, and pagination
// @Tags items
// @Produce json
// @Param category_id query int false "Filter by category"
// @Param limit query int false "Page size (1-100)"
// @Param offset query int false "Page offset"
// @Param sort_by query string false "Sort field: id, name, price"
// @Param order query string false "Sort order: asc, desc"
// @Success 200 {object} ItemPageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) ListItems(c echo.Context) error {
	params := service.ListItemsParams{
		Limit:  defaultLimit,
		Offset: 0,
		SortBy: defaultSortBy,
		Order:  defaultOrder,
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return domainError(apperrors.ErrInvalidLimit)
		}
		params.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return domainError(apperrors.ErrInvalidOffset)
		}
		params.Offset = offset
	}
	if v := c.QueryParam("sort_by"); v != "" {
		params.SortBy = v
	}
	if v := c.QueryParam("order"); v != "" {
		params.Order = v
	}
	if v := c.QueryParam("category_id"); v != "" {
		categoryID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid category_id")
		}
		id := uint(categoryID)
		params.CategoryID = &id
	}

	page, err := h.itemService.ListItems(c.Request().Context(), params)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, toItemPageResponse(page))
}

// UpdateItem godoc
// @Summary Partially update an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields to update"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [put]
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.UpdateItem(c.Request().Context(), user, id, service.UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, toItemResponse(item))
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags items
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	if err := h.itemService.DeleteItem(c.Request().Context(), user, id); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload an item image (jpg, jpeg, png)
// @Tags items
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param file formData file true "Image file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /{id}/upload-image [post]
func (h *ItemHandler) UploadImage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	url, err := h.itemService.AttachImage(c.Request().Context(), user, id, fileHeader.Filename, src)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Status: "ok",
		URL:    url,
	})
}

func itemID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	return uint(id), nil
}

package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "unimarket/internal/errors"
	"unimarket/internal/model"
	"unimarket/internal/repository"
	"unimarket/internal/storage"
)

// Pagination bounds for item listings.
const (
	MinLimit = 1
	MaxLimit = 100
)

// sortColumns is the allow-list of sortable fields mapped to their database
// columns. Anything else is rejected before reaching the repository.
var sortColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
}

// allowedImageExts restricts item image uploads.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// CreateItemInput carries fields for creating an item.
type CreateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  *uint
}

// UpdateItemInput carries a partial item patch; nil fields are left unchanged.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uint
}

// ListItemsParams holds filtering, pagination, and sorting inputs.
type ListItemsParams struct {
	CategoryID *uint
	Limit      int
	Offset     int
	SortBy     string
	Order      string
}

// ItemPage is the page envelope returned by ListItems. Total is the filtered
// count before pagination; NextOffset is nil on the last page.
type ItemPage struct {
	Items      []model.Item `json:"items"`
	Total      int64        `json:"total"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
	NextOffset *int         `json:"next_offset"`
}

// ItemService handles item operations, including the listing query engine.
type ItemService interface {
	CreateItem(ctx context.Context, owner *model.User, input CreateItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id uint) (*model.Item, error)
	ListItems(ctx context.Context, params ListItemsParams) (*ItemPage, error)
	UpdateItem(ctx context.Context, caller *model.User, id uint, input UpdateItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, caller *model.User, id uint) error
	AttachImage(ctx context.Context, caller *model.User, id uint, filename string, src io.Reader) (string, error)
}

type itemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	store        storage.Store
}

// NewItemService creates a new item service.
func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository, store storage.Store) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		store:        store,
	}
}

// CreateItem creates an item owned by the caller.
func (s *itemService) CreateItem(ctx context.Context, owner *model.User, input CreateItemInput) (*model.Item, error) {
	if !input.Price.IsPositive() {
		return nil, apperrors.ErrInvalidPrice
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
	}

	item := &model.Item{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		OwnerID:     owner.ID,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// GetItem fetches a single item by id.
func (s *itemService) GetItem(ctx context.Context, id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return item, nil
}

// ListItems builds a filtered, sorted, paginated page of items. Out-of-range
// pagination values and unknown sort inputs are rejected, never clamped.
func (s *itemService) ListItems(ctx context.Context, params ListItemsParams) (*ItemPage, error) {
	if params.Limit < MinLimit || params.Limit > MaxLimit {
		return nil, apperrors.ErrInvalidLimit
	}
	if params.Offset < 0 {
		return nil, apperrors.ErrInvalidOffset
	}
	column, ok := sortColumns[params.SortBy]
	if !ok {
		return nil, apperrors.ErrInvalidSortField
	}
	if params.Order != "asc" && params.Order != "desc" {
		return nil, apperrors.ErrInvalidSortOrder
	}

	filter := repository.ItemFilter{CategoryID: params.CategoryID}

	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	items, err := s.itemRepo.List(ctx, filter, column, params.Order, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	page := &ItemPage{
		Items:  items,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if next := params.Offset + params.Limit; int64(next) < total {
		page.NextOffset = &next
	}
	return page, nil
}

// UpdateItem applies a partial patch. Only the owner or an admin may update.
func (s *itemService) UpdateItem(ctx context.Context, caller *model.User, id uint, input UpdateItemInput) (*model.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.ErrNotOwner
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, apperrors.ErrInvalidPrice
		}
		item.Price = *input.Price
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		item.CategoryID = input.CategoryID
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item. Only the owner or an admin may delete.
func (s *itemService) DeleteItem(ctx context.Context, caller *model.User, id uint) error {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if item.OwnerID != caller.ID && !caller.IsAdmin() {
		return apperrors.ErrNotOwner
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// AttachImage stores an uploaded image for the item and records its URL.
// The file extension is restricted to jpg/jpeg/png.
func (s *itemService) AttachImage(ctx context.Context, caller *model.User, id uint, filename string, src io.Reader) (string, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return "", err
	}
	if item.OwnerID != caller.ID && !caller.IsAdmin() {
		return "", apperrors.ErrNotOwner
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", apperrors.ErrUnsupportedFileType
	}

	url, err := s.store.Save(item.ID, ext, src)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	item.ImageURL = url
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return "", fmt.Errorf("update item: %w", err)
	}
	return url, nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"unimarket/internal/model"
)

// ItemFilter narrows item queries. A nil CategoryID means no filtering.
type ItemFilter struct {
	CategoryID *uint
}

// ItemRepository defines item persistence operations. The sort column must
// come from the service layer's allow-list; it is interpolated into the
// ORDER BY clause.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter, sortColumn, sortDir string, limit, offset int) ([]model.Item, error)
	Count(ctx context.Context, filter ItemFilter) (int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, id).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter, sortColumn, sortDir string, limit, offset int) ([]model.Item, error) {
	var items []model.Item
	q := r.filtered(ctx, filter).
		Order(fmt.Sprintf("%s %s", sortColumn, sortDir)).
		Limit(limit).
		Offset(offset)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Count(ctx context.Context, filter ItemFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

func (r *itemRepository) filtered(ctx context.Context, filter ItemFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Item{})
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	return q
}

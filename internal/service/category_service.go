package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"unimarket/internal/cache"
	apperrors "unimarket/internal/errors"
	"unimarket/internal/model"
	"unimarket/internal/repository"
)

const (
	categoryCacheKey = "categories"
	categoryCacheTTL = 5 * time.Minute
)

// CategoryService handles category operations.
type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{
		repo:  repo,
		cache: cache,
	}
}

// CreateCategory creates a category with a globally unique name.
func (s *categoryService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, apperrors.ErrCategoryExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check category name: %w", err)
	}

	category := &model.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryCacheKey)
	return category, nil
}

// ListCategories returns the full category list, cached for a short window.
func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	if data, _ := s.cache.Get(ctx, categoryCacheKey); data != nil {
		var cached []model.Category
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(categories); err == nil {
		_ = s.cache.Set(ctx, categoryCacheKey, payload, categoryCacheTTL)
	}
	return categories, nil
}

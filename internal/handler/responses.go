package handler

import (
	"github.com/shopspring/decimal"

	"unimarket/internal/model"
	"unimarket/internal/service"
)

// UserResponse is the public wire shape of a user; the password hash never
// crosses this boundary.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CategoryResponse is the wire shape of a category.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ItemResponse is the wire shape of an item.
type ItemResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  *uint           `json:"category_id"`
	OwnerID     uint            `json:"owner_id"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// ItemPageResponse is the page envelope for item listings.
type ItemPageResponse struct {
	Items      []ItemResponse `json:"items"`
	Total      int64          `json:"total"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
	NextOffset *int           `json:"next_offset"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

func toCategoryResponse(c *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
	}
}

func toItemResponse(i *model.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		CategoryID:  i.CategoryID,
		OwnerID:     i.OwnerID,
		ImageURL:    i.ImageURL,
	}
}

func toItemPageResponse(page *service.ItemPage) ItemPageResponse {
	items := make([]ItemResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toItemResponse(&page.Items[i]))
	}
	return ItemPageResponse{
		Items:      items,
		Total:      page.Total,
		Limit:      page.Limit,
		Offset:     page.Offset,
		NextOffset: page.NextOffset,
	}
}

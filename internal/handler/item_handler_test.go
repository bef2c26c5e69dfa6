package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "unimarket/internal/errors"
	"unimarket/internal/middleware"
	"unimarket/internal/model"
	"unimarket/internal/service"
)

// MockItemService is a mock implementation of service.ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, owner *model.User, input service.CreateItemInput) (*model.Item, error) {
	args := m.Called(ctx, owner, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) GetItem(ctx context.Context, id uint) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) ListItems(ctx context.Context, params service.ListItemsParams) (*service.ItemPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ItemPage), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, caller *model.User, id uint, input service.UpdateItemInput) (*model.Item, error) {
	args := m.Called(ctx, caller, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) DeleteItem(ctx context.Context, caller *model.User, id uint) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockItemService) AttachImage(ctx context.Context, caller *model.User, id uint, filename string, src io.Reader) (string, error) {
	args := m.Called(ctx, caller, id, filename, src)
	return args.String(0), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func errorStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return httpErr.Code
}

func TestItemHandler_ListItems(t *testing.T) {
	alice := model.User{ID: 1, Username: "alice", Role: model.RoleUser}
	next := 10

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockItemService)
		expectedStatus int
		checkBody      func(*testing.T, ItemPageResponse)
	}{
		{
			name:  "defaults applied when query is empty",
			query: "",
			setupMock: func(m *MockItemService) {
				m.On("ListItems", mock.Anything, service.ListItemsParams{
					Limit: 10, Offset: 0, SortBy: "id", Order: "asc",
				}).Return(&service.ItemPage{
					Items:      []model.Item{{ID: 1, Name: "Book", Price: decimal.NewFromFloat(9.99), OwnerID: alice.ID}},
					Total:      15,
					Limit:      10,
					Offset:     0,
					NextOffset: &next,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, page ItemPageResponse) {
				assert.Equal(t, int64(15), page.Total)
				assert.Equal(t, 10, page.Limit)
				require.NotNil(t, page.NextOffset)
				assert.Equal(t, 10, *page.NextOffset)
				require.Len(t, page.Items, 1)
				assert.Equal(t, "Book", page.Items[0].Name)
			},
		},
		{
			name:  "explicit query parameters forwarded",
			query: "limit=5&offset=10&sort_by=price&order=desc&category_id=3",
			setupMock: func(m *MockItemService) {
				categoryID := uint(3)
				m.On("ListItems", mock.Anything, service.ListItemsParams{
					CategoryID: &categoryID, Limit: 5, Offset: 10, SortBy: "price", Order: "desc",
				}).Return(&service.ItemPage{Items: []model.Item{}, Total: 0, Limit: 5, Offset: 10}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, page ItemPageResponse) {
				assert.Nil(t, page.NextOffset)
				assert.Empty(t, page.Items)
			},
		},
		{
			name:  "unknown sort field rejected",
			query: "sort_by=owner_id",
			setupMock: func(m *MockItemService) {
				m.On("ListItems", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidSortField)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric limit rejected before the service",
			query:          "limit=ten",
			setupMock:      func(m *MockItemService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric offset rejected before the service",
			query:          "offset=abc",
			setupMock:      func(m *MockItemService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric category_id rejected before the service",
			query:          "category_id=books",
			setupMock:      func(m *MockItemService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			tt.setupMock(mockService)
			h := NewItemHandler(mockService)

			url := "/items"
			if tt.query != "" {
				url += "?" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			rec := httptest.NewRecorder()
			c := newTestEcho().NewContext(req, rec)

			err := h.ListItems(c)
			if tt.expectedStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				if tt.checkBody != nil {
					var page ItemPageResponse
					require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
					tt.checkBody(t, page)
				}
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.expectedStatus, errorStatus(t, err))
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestItemHandler_CreateItem(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	tests := []struct {
		name           string
		user           *model.User
		body           string
		setupMock      func(*MockItemService)
		expectedStatus int
	}{
		{
			name: "successful create",
			user: alice,
			body: `{"name":"Book","description":"A novel","price":"9.99"}`,
			setupMock: func(m *MockItemService) {
				m.On("CreateItem", mock.Anything, alice, mock.AnythingOfType("service.CreateItemInput")).
					Return(&model.Item{ID: 1, Name: "Book", Price: decimal.NewFromFloat(9.99), OwnerID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "non-positive price rejected",
			user: alice,
			body: `{"name":"Book","price":"0"}`,
			setupMock: func(m *MockItemService) {
				m.On("CreateItem", mock.Anything, alice, mock.AnythingOfType("service.CreateItemInput")).
					Return(nil, apperrors.ErrInvalidPrice)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name fails validation",
			user:           alice,
			body:           `{"price":"9.99"}`,
			setupMock:      func(m *MockItemService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthenticated",
			user:           nil,
			body:           `{"name":"Book","price":"9.99"}`,
			setupMock:      func(m *MockItemService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			tt.setupMock(mockService)
			h := NewItemHandler(mockService)

			req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := newTestEcho().NewContext(req, rec)
			if tt.user != nil {
				c.Set(middleware.UserContextKey, tt.user)
			}

			err := h.CreateItem(c)
			if tt.expectedStatus == http.StatusCreated {
				require.NoError(t, err)
				assert.Equal(t, http.StatusCreated, rec.Code)

				var item ItemResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
				assert.Equal(t, "Book", item.Name)
				assert.Equal(t, uint(1), item.OwnerID)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.expectedStatus, errorStatus(t, err))
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestItemHandler_GetItem(t *testing.T) {
	mockService := new(MockItemService)
	mockService.On("GetItem", mock.Anything, uint(99)).Return(nil, apperrors.ErrItemNotFound)
	h := NewItemHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/items/99", nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.GetItem(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errorStatus(t, err))
	mockService.AssertExpectations(t)
}

func TestItemHandler_DeleteItem(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	tests := []struct {
		name           string
		serviceError   error
		expectedStatus int
	}{
		{name: "owner deletes", serviceError: nil, expectedStatus: http.StatusNoContent},
		{name: "not the owner", serviceError: apperrors.ErrNotOwner, expectedStatus: http.StatusForbidden},
		{name: "unknown item", serviceError: apperrors.ErrItemNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockItemService)
			mockService.On("DeleteItem", mock.Anything, alice, uint(5)).Return(tt.serviceError)
			h := NewItemHandler(mockService)

			req := httptest.NewRequest(http.MethodDelete, "/items/5", nil)
			rec := httptest.NewRecorder()
			c := newTestEcho().NewContext(req, rec)
			c.Set(middleware.UserContextKey, alice)
			c.SetParamNames("id")
			c.SetParamValues("5")

			err := h.DeleteItem(c)
			if tt.serviceError == nil {
				require.NoError(t, err)
				assert.Equal(t, http.StatusNoContent, rec.Code)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.expectedStatus, errorStatus(t, err))
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestItemHandler_UploadImage(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Role: model.RoleUser}

	multipartBody := func(t *testing.T, field, filename string) (*bytes.Buffer, string) {
		t.Helper()
		body := new(bytes.Buffer)
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
		return body, writer.FormDataContentType()
	}

	t.Run("successful upload", func(t *testing.T) {
		mockService := new(MockItemService)
		mockService.On("AttachImage", mock.Anything, alice, uint(5), "photo.jpg", mock.Anything).
			Return("/uploads/items/5.jpg", nil)
		h := NewItemHandler(mockService)

		body, contentType := multipartBody(t, "file", "photo.jpg")
		req := httptest.NewRequest(http.MethodPost, "/5/upload-image", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := newTestEcho().NewContext(req, rec)
		c.Set(middleware.UserContextKey, alice)
		c.SetParamNames("id")
		c.SetParamValues("5")

		require.NoError(t, h.UploadImage(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp UploadResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "/uploads/items/5.jpg", resp.URL)
		mockService.AssertExpectations(t)
	})

	t.Run("unsupported file type", func(t *testing.T) {
		mockService := new(MockItemService)
		mockService.On("AttachImage", mock.Anything, alice, uint(5), "photo.gif", mock.Anything).
			Return("", apperrors.ErrUnsupportedFileType)
		h := NewItemHandler(mockService)

		body, contentType := multipartBody(t, "file", "photo.gif")
		req := httptest.NewRequest(http.MethodPost, "/5/upload-image", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := newTestEcho().NewContext(req, rec)
		c.Set(middleware.UserContextKey, alice)
		c.SetParamNames("id")
		c.SetParamValues("5")

		err := h.UploadImage(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, errorStatus(t, err))
		mockService.AssertExpectations(t)
	})

	t.Run("missing file part", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService)

		body, contentType := multipartBody(t, "attachment", "photo.jpg")
		req := httptest.NewRequest(http.MethodPost, "/5/upload-image", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()
		c := newTestEcho().NewContext(req, rec)
		c.Set(middleware.UserContextKey, alice)
		c.SetParamNames("id")
		c.SetParamValues("5")

		err := h.UploadImage(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, errorStatus(t, err))
		mockService.AssertExpectations(t)
	})
}

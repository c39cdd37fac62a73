package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoloner/qoloner-api/internal/models"
	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/utils"
)

type stubProductReader struct {
	products  []models.Product
	detail    *models.ProductDetail
	listErr   error
	detailErr error
	gotFilter models.CatalogFilter
}

func (s *stubProductReader) GetAll(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubProductReader) List(ctx context.Context, f models.CatalogFilter, page, limit int) ([]models.Product, int, error) {
	s.gotFilter = f
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.products, len(s.products), nil
}

func (s *stubProductReader) GetDetail(ctx context.Context, id int) (*models.ProductDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func newCatalogRouter(reader *stubProductReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(service.NewCatalogService(reader, nil), service.NewPaymentService())

	r := gin.New()
	r.GET("/v1/catalog/products", h.GetProducts)
	r.GET("/v1/catalog/products/:id", h.GetProduct)
	r.GET("/v1/catalog/products/:id/payment", h.GetPaymentInstruction)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, target string) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCatalogHandler_GetProducts_Defaults(t *testing.T) {
	reader := &stubProductReader{products: []models.Product{{ID: 1, Price: 3000}}}
	r := newCatalogRouter(reader)

	w, resp := doRequest(t, r, http.MethodGet, "/v1/catalog/products")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, 0, reader.gotFilter.MinPrice)
	assert.Equal(t, models.DefaultMaxPrice, reader.gotFilter.MaxPrice)
	assert.Empty(t, reader.gotFilter.Category)

	require.NotNil(t, resp.Meta.Pagination)
	assert.Equal(t, 1, resp.Meta.Pagination.Page)
	assert.Equal(t, 50, resp.Meta.Pagination.Limit)
	assert.Equal(t, 1, resp.Meta.Pagination.TotalItems)
}

func TestCatalogHandler_GetProducts_FilterParams(t *testing.T) {
	reader := &stubProductReader{}
	r := newCatalogRouter(reader)

	target := "/v1/catalog/products?category=%D0%A3%D0%BA%D1%80%D0%B0%D1%88%D0%B5%D0%BD%D0%B8%D1%8F&price_min=1000&price_max=20000"
	w, _ := doRequest(t, r, http.MethodGet, target)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Украшения", reader.gotFilter.Category)
	assert.Equal(t, 1000, reader.gotFilter.MinPrice)
	assert.Equal(t, 20000, reader.gotFilter.MaxPrice)
}

func TestCatalogHandler_GetProducts_StoreErrorVerbatim(t *testing.T) {
	reader := &stubProductReader{listErr: errors.New(`relation "products" does not exist`)}
	r := newCatalogRouter(reader)

	w, resp := doRequest(t, r, http.MethodGet, "/v1/catalog/products")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STORE_ERROR", resp.Error.Code)
	assert.Equal(t, `relation "products" does not exist`, resp.Error.Message)
}

func TestCatalogHandler_GetProduct_NotFound(t *testing.T) {
	reader := &stubProductReader{detailErr: sql.ErrNoRows}
	r := newCatalogRouter(reader)

	w, resp := doRequest(t, r, http.MethodGet, "/v1/catalog/products/404")

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Товар не найден", resp.Error.Message)
}

func TestCatalogHandler_GetProduct_InvalidID(t *testing.T) {
	r := newCatalogRouter(&stubProductReader{})

	for _, id := range []string{"abc", "0", "-3"} {
		w, resp := doRequest(t, r, http.MethodGet, "/v1/catalog/products/"+id)

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_ID", resp.Error.Code)
	}
}

func TestCatalogHandler_GetPaymentInstruction(t *testing.T) {
	reader := &stubProductReader{
		detail: &models.ProductDetail{
			Product: models.Product{ID: 5, Title: "Ваза", Price: 40000},
			Master:  models.MasterProfile{Name: "Айгерим", Phone: "+7 777 123 45 67"},
		},
	}
	r := newCatalogRouter(reader)

	w, resp := doRequest(t, r, http.MethodGet, "/v1/catalog/products/5/payment")

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	payment, ok := data["payment"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "Айгерим", payment["recipient"])
	assert.Equal(t, "+7 777 123 45 67", payment["phone"])
	assert.Equal(t, "Заказ: Ваза", payment["comment"])
	assert.Equal(t, "kaspi://app", payment["deeplink"])
	assert.Len(t, payment["steps"], 5)
}

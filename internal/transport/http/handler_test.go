package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	httpapi "github.com/vladislavdragonenkov/storefront/internal/transport/http"
)

func newTestRouter(t *testing.T, customers []domain.Customer, products []domain.Product) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	entry := logger.WithField("component", "http-api-test")

	svc := order.NewServiceWithoutMetrics(
		memory.NewCustomerRepository(customers...),
		memory.NewProductRepository(products...),
		memory.NewOrderRepository(),
		nil,
		entry,
	)
	return httpapi.NewRouter(httpapi.NewHandler(svc, entry), entry)
}

func seedCustomer() domain.Customer {
	return domain.Customer{ID: "cust-1", Name: "Anna", Email: "anna@example.com", CreatedAt: time.Now().UTC()}
}

func seedProduct() domain.Product {
	return domain.Product{ID: "p-1", Name: "mug", Quantity: 10, PriceMinor: 500, CreatedAt: time.Now().UTC()}
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"cust-1","products":[{"product_id":"p-1","quantity":3}]}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp struct {
		ID          string `json:"id"`
		CustomerID  string `json:"customer_id"`
		AmountMinor int64  `json:"amount_minor"`
		Items       []struct {
			ProductID string `json:"product_id"`
			Quantity  int32  `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "cust-1", resp.CustomerID)
	require.Equal(t, int64(1500), resp.AmountMinor)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "p-1", resp.Items[0].ProductID)
}

func TestCreateOrderEndpoint_CustomerNotFound(t *testing.T) {
	router := newTestRouter(t, nil, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"ghost","products":[{"product_id":"p-1","quantity":1}]}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateOrderEndpoint_ProductsMissing(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, nil)

	body := []byte(`{"customer_id":"cust-1"}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateOrderEndpoint_EmptyProductsAccepted(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, nil)

	body := []byte(`{"customer_id":"cust-1","products":[]}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCreateOrderEndpoint_UnknownProduct(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"cust-1","products":[{"product_id":"ghost","quantity":1}]}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCreateOrderEndpoint_InsufficientStock(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"cust-1","products":[{"product_id":"p-1","quantity":100}]}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestCreateOrderEndpoint_InvalidQuantity(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"cust-1","products":[{"product_id":"p-1","quantity":0}]}`)
	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateOrderEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, nil)

	recorder := doRequest(router, http.MethodPost, "/api/v1/orders", []byte(`{`))

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"cust-1","products":[{"product_id":"p-1","quantity":1}]}`)
	created := doRequest(router, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, created.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	fetched := doRequest(router, http.MethodGet, "/api/v1/orders/"+resp.ID, nil)
	require.Equal(t, http.StatusOK, fetched.Code)

	missing := doRequest(router, http.MethodGet, "/api/v1/orders/missing", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestListCustomerOrdersEndpoint(t *testing.T) {
	router := newTestRouter(t, []domain.Customer{seedCustomer()}, []domain.Product{seedProduct()})

	body := []byte(`{"customer_id":"cust-1","products":[{"product_id":"p-1","quantity":1}]}`)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/orders", body).Code)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/orders", body).Code)

	recorder := doRequest(router, http.MethodGet, "/api/v1/customers/cust-1/orders", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Orders []struct {
			ID string `json:"id"`
		} `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
}

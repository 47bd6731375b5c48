package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/belandja/commerce-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/belandja/commerce-api/internal/domains/catalog/application"
	catalogdomain "github.com/belandja/commerce-api/internal/domains/catalog/domain"
	ordersdirectory "github.com/belandja/commerce-api/internal/domains/orders/adapters/directory"
	ordersmemory "github.com/belandja/commerce-api/internal/domains/orders/adapters/memory"
	ordersnotification "github.com/belandja/commerce-api/internal/domains/orders/adapters/notification"
	ordersapp "github.com/belandja/commerce-api/internal/domains/orders/application"
	usersmemory "github.com/belandja/commerce-api/internal/domains/users/adapters/memory"
	usersapp "github.com/belandja/commerce-api/internal/domains/users/application"
	"github.com/belandja/commerce-api/internal/platform/auth"
)

type testEnv struct {
	router  *gin.Engine
	tokens  *auth.Manager
	catalog *catalogmemory.Repository
	users   *usersapp.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	catalog := catalogmemory.NewRepository()
	userRepo := usersmemory.NewRepository()
	userService := usersapp.NewService(userRepo, tokens)
	orderService := ordersapp.NewService(
		ordersmemory.NewRepository(),
		catalog,
		ordersdirectory.NewUserDirectory(userRepo),
		ordersnotification.NewLogNotifier(nil),
	)

	handlers := Handlers{
		OrderAPI:   NewOrderAPI(orderService, nil),
		CatalogAPI: NewCatalogAPI(catalogapp.NewService(catalog)),
		UserAPI:    NewUserAPI(userService),
	}
	return &testEnv{
		router:  NewRouter(tokens, handlers),
		tokens:  tokens,
		catalog: catalog,
		users:   userService,
	}
}

func (env *testEnv) registerAndLogin(t *testing.T) (userID, token string) {
	t.Helper()
	user, err := env.users.Register(context.Background(), "Dian Pertiwi", "dian@example.com", "secret123")
	require.NoError(t, err)
	token, _, err = env.users.Login(context.Background(), "dian@example.com", "secret123")
	require.NoError(t, err)
	return user.ID, token
}

func (env *testEnv) seedProduct(t *testing.T, id string, price float64, qty int) {
	t.Helper()
	_, err := env.catalog.SaveProduct(context.Background(), &catalogdomain.Product{
		ID: id, Name: "Robusta Beans", Price: price, Qty: qty,
	})
	require.NoError(t, err)
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPlaceOrder_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(env.router, http.MethodPost, "/api/orders", "", gin.H{})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, resp.Header().Get("Content-Type"), "application/problem+json")
}

func TestPlaceOrder_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(env.router, http.MethodPost, "/api/orders", "not-a-token", gin.H{})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestPlaceOrder_Created(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerAndLogin(t)
	env.seedProduct(t, "p-1", 25.0, 3)

	resp := doJSON(env.router, http.MethodPost, "/api/orders", token, gin.H{
		"grandTotal": 50.0,
		"orderItems": []gin.H{
			{"name": "Robusta Beans", "productId": "p-1", "price": 25.0, "quantity": 2},
		},
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	var body struct {
		Data struct {
			ID         string  `json:"id"`
			GrandTotal float64 `json:"grandTotal"`
			CreatedBy  string  `json:"createdBy"`
			Status     string  `json:"status"`
		} `json:"data"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.ID)
	require.Equal(t, 50.0, body.Data.GrandTotal)
	require.Equal(t, userID, body.Data.CreatedBy)
	require.Equal(t, "pending", body.Data.Status)
	require.Equal(t, "Order created successfully", body.Message)

	remaining, err := env.catalog.GetProduct(context.Background(), "p-1")
	require.NoError(t, err)
	require.Equal(t, 1, remaining.Qty)
}

func TestPlaceOrder_ValidationProblem(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)
	env.seedProduct(t, "p-1", 25.0, 3)

	resp := doJSON(env.router, http.MethodPost, "/api/orders", token, gin.H{
		"grandTotal": -1.0,
		"orderItems": []gin.H{
			{"name": "Robusta Beans", "productId": "p-1", "price": 25.0, "quantity": 9},
		},
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var problem struct {
		Type       string `json:"type"`
		Extensions struct {
			Fields map[string]string `json:"fields"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
	require.Equal(t, "/problems/validation-error", problem.Type)
	require.Contains(t, problem.Extensions.Fields, "grandTotal")
	require.Contains(t, problem.Extensions.Fields, "orderItems[0].quantity")
}

func TestPlaceOrder_InsufficientStockProblem(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)
	env.seedProduct(t, "p-1", 25.0, 1)

	resp := doJSON(env.router, http.MethodPost, "/api/orders", token, gin.H{
		"grandTotal": 50.0,
		"orderItems": []gin.H{
			{"name": "Robusta Beans", "productId": "p-1", "price": 25.0, "quantity": 2},
		},
	})

	require.Equal(t, http.StatusBadRequest, resp.Code)
	var problem struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
	require.Equal(t, "/problems/insufficient-stock", problem.Type)
}

func TestListOrders_NonNumericPaging(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	resp := doJSON(env.router, http.MethodGet, "/api/orders?page=abc&limit=10", token, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	var problem struct {
		Extensions struct {
			Fields map[string]string `json:"fields"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
	require.Contains(t, problem.Extensions.Fields, "page")
}

func TestListOrders_PaginatedEnvelope(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)
	env.seedProduct(t, "p-1", 25.0, 100)

	for i := 0; i < 3; i++ {
		resp := doJSON(env.router, http.MethodPost, "/api/orders", token, gin.H{
			"grandTotal": 25.0,
			"orderItems": []gin.H{
				{"name": "Robusta Beans", "productId": "p-1", "price": 25.0, "quantity": 1},
			},
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := doJSON(env.router, http.MethodGet, "/api/orders?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Data       []json.RawMessage `json:"data"`
		Page       int               `json:"page"`
		Limit      int               `json:"limit"`
		Total      int64             `json:"total"`
		TotalPages int64             `json:"totalPages"`
		Message    string            `json:"message"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	require.Equal(t, 1, body.Page)
	require.Equal(t, 2, body.Limit)
	require.Equal(t, int64(3), body.Total)
	require.Equal(t, int64(2), body.TotalPages)
	require.Equal(t, "Orders fetched successfully", body.Message)
}

func TestListOrders_LimitAboveCap(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	resp := doJSON(env.router, http.MethodGet, "/api/orders?limit=500", token, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	var problem struct {
		Extensions struct {
			Fields map[string]string `json:"fields"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &problem))
	require.Contains(t, problem.Extensions.Fields, "limit")
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(env.router, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullName": "Dian Pertiwi",
		"email":    "dian@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(env.router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "dian@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var login struct {
		Token string `json:"token"`
		Data  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	resp = doJSON(env.router, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var me struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &me))
	require.Equal(t, login.Data.ID, me.Data.ID)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	payload := gin.H{"fullName": "Dian Pertiwi", "email": "dian@example.com", "password": "secret123"}

	resp := doJSON(env.router, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = doJSON(env.router, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestCatalog_ProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerAndLogin(t)

	resp := doJSON(env.router, http.MethodPost, "/api/products", token, gin.H{
		"name": "Robusta Beans", "sku": "RB-01", "price": 25.0, "qty": 10,
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	resp = doJSON(env.router, http.MethodGet, fmt.Sprintf("/api/products/%s", created.Data.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(env.router, http.MethodGet, "/api/products/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(env.router, http.MethodDelete, fmt.Sprintf("/api/products/%s", created.Data.ID), token, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)
}

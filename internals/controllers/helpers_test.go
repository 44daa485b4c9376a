package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"librarium/config"
	"librarium/internals/auth"
	"librarium/internals/controllers"
	"librarium/internals/middleware"
	"librarium/internals/service"
	"librarium/internals/storage"
)

type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]string)}
}

func (s *memoryTokenStore) Save(_ context.Context, tokenID, login string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenID] = login
	return nil
}

func (s *memoryTokenStore) Fetch(_ context.Context, tokenID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	login, ok := s.tokens[tokenID]
	if !ok {
		return "", auth.ErrTokenNotFound
	}
	return login, nil
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

// newTestServer wires the full /api surface the way main does, over an
// in-memory database and token store.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, storage.Migrate(db))

	log := logrus.New()
	log.SetOutput(io.Discard)

	gateway := auth.NewGateway(&config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}, newMemoryTokenStore())
	accounts := service.NewAccountService(db, gateway, log)
	catalog := service.NewCatalogService(db, log)
	lending := service.NewLendingService(db, log)

	users := controllers.NewUserController(accounts, log)
	authors := controllers.NewAuthorController(catalog, log)
	books := controllers.NewBookController(catalog, log)
	orders := controllers.NewOrderController(lending, log)
	authMiddleware := middleware.NewAuth(gateway, accounts, log)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/user", users.Register)
	api.POST("/user/login", users.Login)
	api.GET("/author/list", authors.List)
	api.GET("/book/list", books.List)

	authed := api.Group("", authMiddleware.RequireAuth)
	authed.GET("/validate", users.Validate)
	authed.PUT("/user/:id", users.UpdateByID)

	admin := authed.Group("", middleware.RequireAdmin)
	admin.DELETE("/user/:id", users.Delete)
	admin.GET("/user/list", users.List)
	admin.POST("/author", authors.Create)
	admin.PUT("/author/:id", authors.Update)
	admin.DELETE("/author/:id", authors.Delete)
	admin.POST("/book", books.Create)
	admin.PUT("/book/:id", books.Update)
	admin.DELETE("/book/:id", books.Delete)
	admin.POST("/order", orders.Issue)
	admin.POST("/order/return", orders.Return)
	admin.GET("/order/:userId/users", orders.ListForUser)

	return &testServer{router: router, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &value))
	return value
}

// register creates an account through the API and returns its id and token.
func (s *testServer) register(t *testing.T, login string, isAdmin bool) (uint, string) {
	t.Helper()
	response := s.do(t, http.MethodPost, "/api/user", "", gin.H{
		"login":    login,
		"password": "secret",
		"email":    login + "@example.com",
		"is_admin": isAdmin,
	})
	require.Equal(t, http.StatusOK, response.Code, response.Body.String())

	summary := decode[controllers.AccountSummaryResponse](t, response)
	return summary.ID, summary.Token
}

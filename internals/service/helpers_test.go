package service_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"librarium/config"
	"librarium/internals/auth"
	"librarium/internals/models"
	"librarium/internals/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// an in-memory sqlite database exists per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, storage.Migrate(db))
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

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

func newTestGateway(store auth.TokenStore) *auth.Gateway {
	return auth.NewGateway(&config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}, store)
}

func seedUser(t *testing.T, db *gorm.DB, login string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		Login:        login,
		PasswordHash: "x",
		Email:        login + "@example.com",
		IsAdmin:      isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAuthor(t *testing.T, db *gorm.DB, name string) *models.Author {
	t.Helper()
	author := &models.Author{
		Name:        name,
		Biography:   "biography of " + name,
		DateOfBirth: time.Date(1920, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(author).Error)
	return author
}

func seedBook(t *testing.T, db *gorm.DB, title string, quantity int, authorID, creatorID uint) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:       title,
		Description: "about " + title,
		Genre:       "fiction",
		Quantity:    quantity,
		AuthorID:    authorID,
		UserID:      creatorID,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

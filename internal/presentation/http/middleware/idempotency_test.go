package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
)

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) GetByKey(ctx context.Context, key string, accountID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := r.keys[key]
	if !ok || ikey.AccountID != accountID {
		return nil, nil
	}
	return ikey, nil
}

func (r *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(ctx context.Context) error { return nil }

func newIdempotencyRouter(repo *memoryIdempotencyRepo, accountID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("account_id", accountID)
	})
	router.Use(Idempotency(IdempotencyConfig{Repo: repo}))
	router.POST("/orders", handler)
	return router
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set(IdempotencyKeyHeader, key)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := newIdempotencyRouter(repo, uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"order": "ORD-001"})
	})

	first := postWithKey(router, "key-1")
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	second := postWithKey(router, "key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)
}

func TestIdempotencyRetriesAfterFailure(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := newIdempotencyRouter(repo, uuid.New(), func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusBadGateway, gin.H{"message": "payment gateway unavailable"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": "ORD-002"})
	})

	first := postWithKey(router, "key-2")
	assert.Equal(t, http.StatusBadGateway, first.Code)
	require.Empty(t, repo.keys)

	second := postWithKey(router, "key-2")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)

	third := postWithKey(router, "key-2")
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Equal(t, "true", third.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencySkipsRequestsWithoutKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	router := newIdempotencyRouter(repo, uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"order": "ORD-003"})
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 2, calls)
	assert.Empty(t, repo.keys)
}

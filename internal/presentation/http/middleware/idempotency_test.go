package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type replayKey struct {
	key    string
	userID uuid.UUID
}

// fakeReplayStore keeps idempotency records in memory. Create replaces an
// existing record for the same (key, user) pair, matching the repository
// contract.
type fakeReplayStore struct {
	records map[replayKey]*entity.IdempotencyKey
}

func newFakeReplayStore() *fakeReplayStore {
	return &fakeReplayStore{records: make(map[replayKey]*entity.IdempotencyKey)}
}

func (s *fakeReplayStore) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	record, ok := s.records[replayKey{key, userID}]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (s *fakeReplayStore) Create(ctx context.Context, record *entity.IdempotencyKey) error {
	s.records[replayKey{record.Key, record.UserID}] = record
	return nil
}

func (s *fakeReplayStore) DeleteExpired(ctx context.Context) error {
	for k, record := range s.records {
		if record.IsExpired() {
			delete(s.records, k)
		}
	}
	return nil
}

// newSaleRouter builds a POST route behind the idempotency middleware whose
// handler counts executions.
func newSaleRouter(t *testing.T, store *fakeReplayStore, userID uuid.UUID, executed *int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: store, Logger: zaptest.NewLogger(t)}),
		func(c *gin.Context) {
			*executed++
			c.JSON(201, gin.H{"executions": *executed})
		})
	return router
}

func postSale(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sales", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyRequiresKey(t *testing.T) {
	executed := 0
	router := newSaleRouter(t, newFakeReplayStore(), uuid.New(), &executed)

	w := postSale(router, "")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, 0, executed)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	executed := 0
	router := newSaleRouter(t, newFakeReplayStore(), uuid.New(), &executed)

	first := postSale(router, "key-1")
	require.Equal(t, 201, first.Code)
	require.Equal(t, 1, executed)

	second := postSale(router, "key-1")
	assert.Equal(t, 201, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, executed, "retry must not re-execute the handler")

	// A different key executes again
	third := postSale(router, "key-2")
	require.Equal(t, 201, third.Code)
	assert.Equal(t, 2, executed)
}

func TestIdempotencyRefreshesExpiredRecord(t *testing.T) {
	executed := 0
	store := newFakeReplayStore()
	userID := uuid.New()
	router := newSaleRouter(t, store, userID, &executed)

	// Seed a record whose TTL has passed
	require.NoError(t, store.Create(context.Background(), &entity.IdempotencyKey{
		Key:          "key-1",
		UserID:       userID,
		ResponseCode: 201,
		ResponseBody: `{"executions":0}`,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	// An expired key re-executes and the stored record is replaced
	w := postSale(router, "key-1")
	require.Equal(t, 201, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, executed)

	record, err := store.GetByKey(context.Background(), "key-1", userID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.False(t, record.IsExpired(), "stored record must carry a fresh TTL")
	assert.Equal(t, w.Body.String(), record.ResponseBody)

	// With the record refreshed, the next retry replays instead of
	// re-executing
	again := postSale(router, "key-1")
	assert.Equal(t, "true", again.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 1, executed)
}

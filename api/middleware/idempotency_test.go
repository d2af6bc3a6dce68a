package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: map[string]string{}}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = fmt.Sprint(value)
	return true, nil
}

func (s *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "test:idempotency:" + scope + ":" + id
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()

	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"order-1"}}`))
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"quote_id":"q"}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)

	second := send()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls, "handler must not run twice for the same key")
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryIdempotencyStore()

	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send(`{"quote_id":"a"}`).Code)
	assert.Equal(t, http.StatusConflict, send(`{"quote_id":"b"}`).Code)
}

func TestIdempotencyRequiresHeaderOnCoveredRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdempotencySkipsUncoveredRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()

	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestRouteTTLClassification(t *testing.T) {
	ttl, ok := routeTTL(http.MethodPost, "/api/v1/orders/{orderId}/escrow/release")
	require.True(t, ok)
	assert.Equal(t, criticalIdempotencyTTL, ttl)

	ttl, ok = routeTTL(http.MethodPost, "/api/v1/rfq")
	require.True(t, ok)
	assert.Equal(t, defaultIdempotencyTTL, ttl)

	_, ok = routeTTL(http.MethodGet, "/api/v1/orders")
	assert.False(t, ok)
}

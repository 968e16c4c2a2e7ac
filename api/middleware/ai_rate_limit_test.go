package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/pkg/config"
)

type fakeLimiterStore struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (s *fakeLimiterStore) RateLimitKey(scope string) string {
	return "nc:rate_limit:" + scope
}

func (s *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func limitedHandler(t *testing.T, policy AIRateLimitPolicy, store rateLimiterStore) (http.Handler, *session.Session) {
	t.Helper()
	sessStore := session.NewStore(config.SessionConfig{TTL: time.Hour}, nil)
	sess, err := sessStore.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	wrap := AIRateLimit(policy, store, nil)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	outer := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrap(inner).ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
	return outer, sess
}

func TestAIRateLimitAllowsUnderLimit(t *testing.T) {
	policy := NewAIRateLimitPolicy("chat", time.Minute, 0, 3)
	handler, _ := limitedHandler(t, policy, &fakeLimiterStore{})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, w.Code)
		}
	}
}

func TestAIRateLimitBlocksSessionOverLimit(t *testing.T) {
	policy := NewAIRateLimitPolicy("chat", time.Minute, 0, 2)
	handler, _ := limitedHandler(t, policy, &fakeLimiterStore{})

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestAIRateLimitBlocksIPOverLimit(t *testing.T) {
	policy := NewAIRateLimitPolicy("studio", time.Minute, 1, 0)
	handler, _ := limitedHandler(t, policy, &fakeLimiterStore{})

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestAIRateLimitCountersUseStoreNamespace(t *testing.T) {
	policy := NewAIRateLimitPolicy("chat", time.Minute, 5, 5)
	store := &fakeLimiterStore{}
	handler, sess := limitedHandler(t, policy, store)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if _, ok := store.counts["nc:rate_limit:ip:chat:203.0.113.9"]; !ok {
		t.Fatalf("ip counter missing the store namespace: %v", store.counts)
	}
	if _, ok := store.counts["nc:rate_limit:session:chat:"+sess.ID]; !ok {
		t.Fatalf("session counter missing the store namespace: %v", store.counts)
	}
}

func TestAIRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewAIRateLimitPolicy("chat", time.Minute, 1, 1)
	handler, _ := limitedHandler(t, policy, nil)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected pass-through 204, got %d", i, w.Code)
		}
	}
}

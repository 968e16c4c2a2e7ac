package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neonclouds/neonclouds-backend/api/middleware"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/pkg/config"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	store := session.NewStore(config.SessionConfig{TTL: time.Hour}, nil)
	sess, err := store.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}

func withSession(r *http.Request, sess *session.Session) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

func mustProduct(t *testing.T, products *catalog.Catalog, id string) catalog.Product {
	t.Helper()
	p, ok := products.Get(id)
	if !ok {
		t.Fatalf("product %s not in catalog", id)
	}
	return p
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

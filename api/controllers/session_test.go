package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neonclouds/neonclouds-backend/api/middleware"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/pkg/config"
)

func TestSessionDelete(t *testing.T) {
	store := session.NewStore(config.SessionConfig{TTL: time.Hour}, nil)
	sess, err := store.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	handler := SessionDelete(store, nil)
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), sess))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if store.Len() != 0 {
		t.Fatalf("expected session removed, have %d", store.Len())
	}
}

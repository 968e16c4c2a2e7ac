package studio

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neonclouds/neonclouds-backend/pkg/config"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
)

var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}

type stubRemixer struct {
	result string
	ok     bool

	gotSource string
	gotPrompt string
	calls     int
}

func (r *stubRemixer) RemixImage(ctx context.Context, imageDataURI, prompt string) (string, bool) {
	r.calls++
	r.gotSource = imageDataURI
	r.gotPrompt = prompt
	return r.result, r.ok
}

func newTestService(t *testing.T, remixer Remixer) Service {
	t.Helper()
	svc, err := NewService(remixer, config.StudioConfig{MaxUploadMB: 1}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSetSourceFromUpload(t *testing.T) {
	svc := newTestService(t, &stubRemixer{})
	state := NewState()

	snap, err := svc.SetSourceFromUpload(context.Background(), state, bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(snap.SourceImage, "data:image/png;base64,") {
		t.Fatalf("expected png data uri source, got %q", snap.SourceImage)
	}
	if snap.ResultImage != "" {
		t.Fatal("new source must clear the result")
	}
}

func TestSetSourceFromUploadRejectsNonImage(t *testing.T) {
	svc := newTestService(t, &stubRemixer{})
	state := NewState()

	_, err := svc.SetSourceFromUpload(context.Background(), state, strings.NewReader("plain text, not an image"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if snap := state.Snapshot(); snap.SourceImage != "" {
		t.Fatal("rejected upload must not set the source")
	}
}

func TestSetSourceFromCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngHeader)
	}))
	defer server.Close()

	svc := newTestService(t, &stubRemixer{})
	state := NewState()

	snap, err := svc.SetSourceFromCatalog(context.Background(), state, server.URL+"/product.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(snap.SourceImage, "data:image/png;base64,") {
		t.Fatalf("expected png data uri source, got %q", snap.SourceImage)
	}
}

func TestSetSourceFromCatalogFetchFailureLeavesSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	svc := newTestService(t, &stubRemixer{})
	state := NewState()
	state.setSource("data:image/png;base64,AAAA")

	_, err := svc.SetSourceFromCatalog(context.Background(), state, server.URL+"/missing.png")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if snap := state.Snapshot(); snap.SourceImage != "data:image/png;base64,AAAA" {
		t.Fatal("failed fetch must leave the source unchanged")
	}
}

func TestGenerateSuccess(t *testing.T) {
	remixer := &stubRemixer{result: "data:image/png;base64,QkJC", ok: true}
	svc := newTestService(t, remixer)
	state := NewState()
	state.setSource("data:image/png;base64,AAAA")

	snap, ok, err := svc.Generate(context.Background(), state, "  make it neon  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a generated image")
	}
	if snap.ResultImage != "data:image/png;base64,QkJC" {
		t.Fatalf("unexpected result %q", snap.ResultImage)
	}
	if snap.Busy {
		t.Fatal("busy must clear after generation")
	}
	if remixer.gotPrompt != "make it neon" {
		t.Fatalf("prompt not trimmed: %q", remixer.gotPrompt)
	}
	if remixer.gotSource != "data:image/png;base64,AAAA" {
		t.Fatalf("source not forwarded: %q", remixer.gotSource)
	}
}

func TestGenerateNoResult(t *testing.T) {
	remixer := &stubRemixer{ok: false}
	svc := newTestService(t, remixer)
	state := NewState()
	state.setSource("data:image/png;base64,AAAA")

	snap, ok, err := svc.Generate(context.Background(), state, "vaporwave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a no-result outcome")
	}
	if snap.ResultImage != "" {
		t.Fatalf("no-result must leave the result empty, got %q", snap.ResultImage)
	}
	if snap.Busy {
		t.Fatal("busy must clear even on no-result")
	}
}

func TestGenerateGuards(t *testing.T) {
	remixer := &stubRemixer{ok: true, result: "data:image/png;base64,QkJC"}
	svc := newTestService(t, remixer)

	// Missing source.
	state := NewState()
	_, _, err := svc.Generate(context.Background(), state, "prompt")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing source, got %v", err)
	}

	// Missing prompt.
	state.setSource("data:image/png;base64,AAAA")
	_, _, err = svc.Generate(context.Background(), state, "   ")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing prompt, got %v", err)
	}
	if remixer.calls != 0 {
		t.Fatal("guards must fire before the collaborator is called")
	}

	// Busy workspace.
	if _, err := state.beginGenerate("held"); err != nil {
		t.Fatalf("arming generation: %v", err)
	}
	_, _, err = svc.Generate(context.Background(), state, "another")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict while busy, got %v", err)
	}
}

package studio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/neonclouds/neonclouds-backend/pkg/config"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/gemini"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

// Remixer is the image collaborator. It never fails: a false second
// return is the no-result outcome, whatever the cause.
type Remixer interface {
	RemixImage(ctx context.Context, imageDataURI, prompt string) (string, bool)
}

// Service drives the remix workspace: loading sources and running
// generations against the collaborator.
type Service interface {
	SetSourceFromUpload(ctx context.Context, state *State, reader io.Reader) (Snapshot, error)
	SetSourceFromCatalog(ctx context.Context, state *State, imageURL string) (Snapshot, error)
	Generate(ctx context.Context, state *State, prompt string) (Snapshot, bool, error)
}

type service struct {
	remixer  Remixer
	fetcher  *http.Client
	maxBytes int64
	logg     *logger.Logger
}

// NewService builds the studio service.
func NewService(remixer Remixer, cfg config.StudioConfig, logg *logger.Logger) (Service, error) {
	if remixer == nil {
		return nil, fmt.Errorf("remixer required")
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 8 * 1024 * 1024
	}
	return &service{
		remixer:  remixer,
		fetcher:  &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		logg:     logg,
	}, nil
}

// SetSourceFromUpload reads an uploaded image into a data URI and makes
// it the workspace source, clearing any previous result.
func (s *service) SetSourceFromUpload(ctx context.Context, state *State, reader io.Reader) (Snapshot, error) {
	if state == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "studio state missing")
	}

	payload, err := io.ReadAll(io.LimitReader(reader, s.maxBytes+1))
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading uploaded image")
	}
	if int64(len(payload)) > s.maxBytes {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("image exceeds the %d MB upload limit", s.maxBytes/(1024*1024)))
	}

	mimeType, err := sniffImageType(payload)
	if err != nil {
		return Snapshot{}, err
	}
	return state.setSource(gemini.EncodeDataURI(payload, mimeType)), nil
}

// SetSourceFromCatalog fetches a catalog image and re-encodes it as a
// data URI. On any fetch failure the source is left unchanged and the
// error carries a user-facing notice.
func (s *service) SetSourceFromCatalog(ctx context.Context, state *State, imageURL string) (Snapshot, error) {
	if state == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "studio state missing")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image url")
	}

	resp, err := s.fetcher.Do(req)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "catalog image fetch failed", err)
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "couldn't load this image, try uploading one instead")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if s.logg != nil {
			s.logg.Error(ctx, "catalog image fetch failed", err)
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "couldn't load this image, try uploading one instead")
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "couldn't load this image, try uploading one instead")
	}
	if int64(len(payload)) > s.maxBytes {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "catalog image is too large to remix")
	}

	mimeType, err := sniffImageType(payload)
	if err != nil {
		return Snapshot{}, err
	}
	return state.setSource(gemini.EncodeDataURI(payload, mimeType)), nil
}

// Generate runs one remix against the collaborator. The busy flag is
// set for the duration of the call; the second return reports whether
// an image came back.
func (s *service) Generate(ctx context.Context, state *State, prompt string) (Snapshot, bool, error) {
	if state == nil {
		return Snapshot{}, false, pkgerrors.New(pkgerrors.CodeInternal, "studio state missing")
	}

	source, err := state.beginGenerate(strings.TrimSpace(prompt))
	if err != nil {
		return Snapshot{}, false, err
	}

	result, ok := s.remixer.RemixImage(ctx, source, strings.TrimSpace(prompt))
	snap := state.completeGenerate(result)
	return snap, ok, nil
}

func sniffImageType(payload []byte) (string, error) {
	switch mimeType := http.DetectContentType(payload); mimeType {
	case "image/png", "image/jpeg", "image/webp":
		return mimeType, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unsupported image format").
			WithDetails(map[string]string{"detected": mimeType})
	}
}

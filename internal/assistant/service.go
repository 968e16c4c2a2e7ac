package assistant

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

// Replier is the text collaborator. It never fails: every outcome is a
// usable string, fallbacks included.
type Replier interface {
	ChatReply(ctx context.Context, query string) string
}

// Service drives one chat turn against the collaborator.
type Service interface {
	Send(ctx context.Context, transcript *Transcript, text string) ([]Message, error)
}

type service struct {
	replier Replier
	logg    *logger.Logger
}

// NewService builds the assistant service.
func NewService(replier Replier, logg *logger.Logger) (Service, error) {
	if replier == nil {
		return nil, fmt.Errorf("replier required")
	}
	return &service{replier: replier, logg: logg}, nil
}

// Send appends the user message, waits for the collaborator, and
// appends the reply. Whitespace-only input is rejected before any state
// changes; overlapping sends are rejected by the transcript.
func (s *service) Send(ctx context.Context, transcript *Transcript, text string) ([]Message, error) {
	if transcript == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transcript missing")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message text is required")
	}

	if _, err := transcript.beginTurn(trimmed); err != nil {
		return nil, err
	}

	reply := s.replier.ChatReply(ctx, trimmed)
	transcript.completeTurn(reply)

	return transcript.Messages(), nil
}

package studio

import (
	"sync"

	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
)

// Snapshot is the externally visible studio state.
type Snapshot struct {
	SourceImage string `json:"source_image,omitempty"`
	ResultImage string `json:"result_image,omitempty"`
	Prompt      string `json:"prompt"`
	Busy        bool   `json:"busy"`
}

// State holds one session's remix workspace: the source image, the last
// generated result, the prompt, and the busy flag guarding overlapping
// generations. Methods are safe for concurrent use.
type State struct {
	mu sync.Mutex

	sourceImage string
	resultImage string
	prompt      string
	busy        bool
}

// NewState returns an empty workspace.
func NewState() *State {
	return &State{}
}

// setSource replaces the source image and clears any previous result.
func (s *State) setSource(dataURI string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sourceImage = dataURI
	s.resultImage = ""
	return s.snapshotLocked()
}

// beginGenerate validates and arms a generation, returning the source
// to send. A generation already in flight is rejected; so is a missing
// source or prompt.
func (s *State) beginGenerate(prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return "", pkgerrors.New(pkgerrors.CodeStateConflict, "a generation is already in flight")
	}
	if s.sourceImage == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a source image is required")
	}
	if prompt == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a prompt is required")
	}
	s.prompt = prompt
	s.resultImage = ""
	s.busy = true
	return s.sourceImage, nil
}

// completeGenerate lands the outcome and clears the busy flag. A
// no-result outcome leaves the result empty.
func (s *State) completeGenerate(result string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resultImage = result
	s.busy = false
	return s.snapshotLocked()
}

// Snapshot returns the current state without side effects.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		SourceImage: s.sourceImage,
		ResultImage: s.resultImage,
		Prompt:      s.prompt,
		Busy:        s.busy,
	}
}

// Package inference defines the text-generation client used by the
// explanation layer, plus the typed failures the layer distinguishes when
// deciding whether to fall back to template rendering.
package inference

import (
	"context"
	"errors"
	"time"
)

// Typed generation failures. The explanation layer treats every one of these
// as recoverable: generation falls back to a template, never to an error
// surfaced to the user.
var (
	ErrInvalidHandle   = errors.New("inference: invalid model handle")
	ErrStaleHandle     = errors.New("inference: model handle is stale")
	ErrAlreadyUnloaded = errors.New("inference: model already unloaded")
	ErrNullContext     = errors.New("inference: null generation context")
	ErrTokenization    = errors.New("inference: tokenization failed")
	ErrContextOverflow = errors.New("inference: prompt exceeds context window")
	ErrDecode          = errors.New("inference: decode failed")
	ErrTimeout         = errors.New("inference: generation timed out")
)

// Request is one generation call. Temperature is fixed at zero: explanation
// output must be reproducible for a given incident.
type Request struct {
	Prompt    string
	MaxTokens int
	TopP      float64
	Timeout   time.Duration
}

// Response is the raw generation result before slot extraction.
type Response struct {
	Text             string
	TokenCount       int
	TimeToFirstToken time.Duration
}

// Client generates text for a prompt. Implementations must honor the context
// and return one of the typed errors above when the failure class is known.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Recoverable reports whether the error is one of the typed generation
// failures that the explanation layer handles by falling back.
func Recoverable(err error) bool {
	for _, known := range []error{
		ErrInvalidHandle, ErrStaleHandle, ErrAlreadyUnloaded, ErrNullContext,
		ErrTokenization, ErrContextOverflow, ErrDecode, ErrTimeout,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

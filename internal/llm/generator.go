package llm

import (
	"context"
	"errors"
)

// Generator drafts a docstring for one function's source text. Any error
// is recoverable: the caller surfaces it and offers retry/skip/quit.
type Generator interface {
	GenerateDocstring(ctx context.Context, functionSource string) (string, error)
}

// ErrUnavailable is returned by the fallback generator selected when no
// backend is configured.
var ErrUnavailable = errors.New("docstring generation backend is not configured")

// Unavailable is the no-backend Generator. It fails predictably instead
// of making capability checks leak into the session.
type Unavailable struct{}

func (Unavailable) GenerateDocstring(ctx context.Context, functionSource string) (string, error) {
	return "", ErrUnavailable
}

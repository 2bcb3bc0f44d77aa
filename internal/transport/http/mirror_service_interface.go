package http

import (
	"context"
	"io"

	"github.com/Vikash02022000/FinSight/internal/services"
)

// MirrorServiceInterface is the contract the mirror handler depends on,
// kept narrow so tests can swap in a stub.
type MirrorServiceInterface interface {
	Process(ctx context.Context, r io.Reader) (*services.MirrorResult, error)
}

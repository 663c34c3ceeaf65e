package user

import (
	"context"
	"io"
)

type ImageStore interface {
	Upload(ctx context.Context, contentType string, body io.Reader) (url string, err error)
}

// ProfileCache keeps public profiles by handle. Implementations treat
// their own failures as cache misses.
type ProfileCache interface {
	Get(ctx context.Context, handle Handle) (PublicProfile, bool)
	Set(ctx context.Context, profile PublicProfile)
	Invalidate(ctx context.Context, handles ...Handle)
}

package persistence

import (
	"context"
	"io"
)

// PhotoStore persists uploaded deposit photos under opaque names generated
// independently of the record identity.
type PhotoStore interface {
	// Save writes the photo content and returns the opaque stored reference
	Save(ctx context.Context, name string, content io.Reader) (string, error)

	// Remove deletes a stored photo. Removing an unknown reference is a
	// no-op; records deleted before their photo must not wedge cleanup.
	Remove(ctx context.Context, reference string) error
}

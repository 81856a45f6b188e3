package service

import (
	"context"
)

// BlobStore writes finished renditions under deterministic keys and serves
// them at permanent public URLs. Implementations must be safe for
// concurrent use.
type BlobStore interface {
	// Put stores a whole object. Overwriting a key with identical content
	// is safe and has no observable effect.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every object under prefix, paginating through
	// listings as needed, and returns the number removed. Empty or missing
	// prefixes return 0.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL is a pure string transform; no signing, no expiry.
	PublicURL(key string) string
}

package imagecache

import "context"

// Store persists image bytes by name and resolves names to references a
// browser or terminal client can open.
type Store interface {
	Has(ctx context.Context, name string) (bool, error)
	Put(ctx context.Context, name string, data []byte, contentType string) error
	URL(ctx context.Context, name string) (string, error)
	List(ctx context.Context) ([]string, error)
}

package imagecache

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/streetsmarts/internal/common"
	"github.com/dmitrijs2005/streetsmarts/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Fetcher downloads the image for a coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lng float64) ([]byte, string, error)
}

// Cache fronts a Fetcher with a Store. Concurrent misses for the same
// coordinate share one download.
type Cache struct {
	store   Store
	fetcher Fetcher
	log     logging.Logger
	group   singleflight.Group
}

func New(store Store, fetcher Fetcher, log logging.Logger) *Cache {
	return &Cache{store: store, fetcher: fetcher, log: log.With("component", "imagecache")}
}

// Get returns the stored name for the coordinate, downloading it first if
// needed. Failures wrap common.ErrImageUnavailable.
//
// The shared download runs detached from any single caller's context; each
// caller stops waiting when its own ctx is done.
func (c *Cache) Get(ctx context.Context, lat, lng float64) (string, error) {
	name := FileName(lat, lng)
	flightCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(name, func() (interface{}, error) {
		return nil, c.fill(flightCtx, name, lat, lng)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", common.ErrImageUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			c.log.Warn(ctx, "image unavailable", "name", name, "shared", res.Shared, "error", res.Err)
			return "", fmt.Errorf("%w: %v", common.ErrImageUnavailable, res.Err)
		}
		return name, nil
	}
}

func (c *Cache) fill(ctx context.Context, name string, lat, lng float64) error {
	ok, err := c.store.Has(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	data, ct, err := c.fetcher.Fetch(ctx, lat, lng)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, name, data, ct); err != nil {
		return err
	}
	c.log.Info(ctx, "image cached", "name", name, "bytes", len(data))
	return nil
}

// URL resolves a stored name to a client-facing reference.
func (c *Cache) URL(ctx context.Context, name string) (string, error) {
	return c.store.URL(ctx, name)
}

// Names lists everything currently stored.
func (c *Cache) Names(ctx context.Context) ([]string, error) {
	return c.store.List(ctx)
}

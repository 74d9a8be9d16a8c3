// Package streetview fetches static street-level imagery from the Google
// Street View Static API.
package streetview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/streetsmarts/internal/logging"
	"github.com/dmitrijs2005/streetsmarts/internal/netx"
	"github.com/sony/gobreaker"
)

// MaxImageBytes bounds a single downloaded image.
const MaxImageBytes = 5 << 20

type Options struct {
	BaseURL string
	APIKey  string
	Size    string
	Timeout time.Duration
}

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	size    string
	cb      *gobreaker.CircuitBreaker
}

func NewClient(opts Options, log logging.Logger) *Client {
	st := gobreaker.Settings{
		Name:        "StreetView",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		size:    opts.Size,
		cb:      gobreaker.NewCircuitBreaker(st),
	}
}

// ImageURL builds the provider request for a coordinate.
func (c *Client) ImageURL(lat, lng float64) string {
	q := url.Values{}
	q.Set("size", c.size)
	q.Set("location", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("key", c.apiKey)
	return c.baseURL + "/maps/api/streetview?" + q.Encode()
}

// Fetch downloads the image for a coordinate. While the breaker is open it
// fails fast with gobreaker.ErrOpenState.
func (c *Client) Fetch(ctx context.Context, lat, lng float64) ([]byte, string, error) {
	type image struct {
		data []byte
		ct   string
	}

	res, err := c.cb.Execute(func() (interface{}, error) {
		data, ct, err := netx.GetImage(ctx, c.http, c.ImageURL(lat, lng), MaxImageBytes)
		if err != nil {
			return nil, err
		}
		return image{data: data, ct: ct}, nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("streetview: %w", err)
	}

	img := res.(image)
	return img.data, img.ct, nil
}

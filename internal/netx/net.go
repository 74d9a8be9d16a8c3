// Package netx contains outbound HTTP helpers.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrNotImage         = errors.New("response is not an image")
	ErrTooLarge         = errors.New("response too large")
)

// GetImage fetches url and returns the body and its content type. Responses
// other than 2xx, responses whose Content-Type is not image/*, and bodies
// larger than maxBytes are rejected.
func GetImage(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image") {
		return nil, "", fmt.Errorf("%w: %q", ErrNotImage, ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, "", ErrTooLarge
	}
	return body, ct, nil
}

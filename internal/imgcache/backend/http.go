package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTP fetches images over plain HTTP(S) GET requests.
type HTTP struct {
	Client *http.Client
}

// NewHTTP returns an HTTP backend with a bounded default client, since an
// unconfigured client's zero Timeout would let a single stalled request
// hang the worker goroutine forever.
func NewHTTP() *HTTP {
	return &HTTP{Client: &http.Client{Timeout: 30 * time.Second}}
}

func (b *HTTP) Name() string { return "http" }

func (b *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend.HTTP.Fetch: %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// List is unsupported: an HTTP backend addresses individual known URLs,
// not an enumerable folder.
func (b *HTTP) List(context.Context, string, []string) ([]string, error) {
	return nil, errors.New("backend.HTTP.List: listing is not supported over plain HTTP")
}

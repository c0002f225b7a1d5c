package nets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fetch opens a remote file for reading. The caller closes the returned body.
type Fetch func(ctx context.Context, url string) (io.ReadCloser, error)

func (Module) Fetch(
	client HTTPClient,
) Fetch {
	return func(ctx context.Context, url string) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
		}
		return resp.Body, nil
	}
}

// IsURL reports whether path names a remote file.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://")
}

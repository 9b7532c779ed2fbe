package table

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/corpix/uarand"
)

// IsRemote reports whether path names a table to fetch over HTTP rather than a file.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// open returns the raw content of a table, from disk or over HTTP.
func (l *Loader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !IsRemote(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, &IOError{Path: path, Err: err}
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	req.Header.Set("User-Agent", uarand.GetRandom())

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &IOError{Path: path, Err: fmt.Errorf("got non-OK status code: %v", resp.StatusCode)}
	}

	return resp.Body, nil
}

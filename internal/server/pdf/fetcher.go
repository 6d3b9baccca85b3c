package pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// ImageFetchTimeout bounds the download of one recipe image.
	ImageFetchTimeout = 10 * time.Second

	maxImageSize = 10 << 20
)

// HTTPImageFetcher downloads images over plain HTTP(S).
type HTTPImageFetcher struct {
	client *http.Client
}

func NewHTTPImageFetcher(timeout time.Duration) *HTTPImageFetcher {
	return &HTTPImageFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, "", fmt.Errorf("image larger than %d bytes", maxImageSize)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

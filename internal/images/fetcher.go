package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const maxImageBytes = 5 * 1024 * 1024

// Fetcher loads comic images from http(s) URLs or local paths. Relative
// image paths resolve against the manifest location, matching how the
// archive lays out its files.
type Fetcher struct {
	base string
	http *http.Client
}

func NewFetcher(base string, httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &Fetcher{base: base, http: httpClient}
}

// Resolve turns a manifest image path into an absolute URL or filesystem
// path relative to the manifest source.
func (f *Fetcher) Resolve(imagePath string) string {
	if imagePath == "" {
		return ""
	}
	if parsed, err := url.Parse(imagePath); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return imagePath
	}
	if f.base == "" {
		return imagePath
	}
	if baseURL, err := url.Parse(f.base); err == nil && (baseURL.Scheme == "http" || baseURL.Scheme == "https") {
		ref, err := url.Parse(imagePath)
		if err != nil {
			return imagePath
		}
		return baseURL.ResolveReference(ref).String()
	}
	// Local manifest: resolve against its directory.
	dir := f.base
	if idx := strings.LastIndexAny(dir, "/\\"); idx >= 0 {
		dir = dir[:idx]
	} else {
		dir = "."
	}
	return dir + "/" + imagePath
}

// Fetch reads the image bytes. Size is capped so a hostile manifest cannot
// balloon memory.
func (f *Fetcher) Fetch(ctx context.Context, imagePath string) ([]byte, error) {
	resolved := f.Resolve(imagePath)
	if resolved == "" {
		return nil, fmt.Errorf("entry has no image")
	}

	if parsed, err := url.Parse(resolved); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return f.fetchRemote(ctx, resolved)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		data = data[:maxImageBytes]
	}
	return data, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

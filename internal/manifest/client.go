package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// LoadError is fatal for the session: the manifest could not be fetched or
// did not decode into the expected structure. There is no retry.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load manifest %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Client struct {
	http *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{http: httpClient}
}

// Load fetches and decodes the manifest. Source may be an http(s) URL or a
// local file path. Remote fetches always bypass intermediary caches.
func (c *Client) Load(ctx context.Context, source string) (*Manifest, error) {
	if isHTTPSource(source) {
		return c.loadRemote(ctx, source)
	}
	return loadFile(source)
}

func (c *Client) loadRemote(ctx context.Context, manifestURL string) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, &LoadError{Source: manifestURL, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LoadError{Source: manifestURL, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &LoadError{
			Source: manifestURL,
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	m, err := decode(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: manifestURL, Err: err}
	}
	return m, nil
}

func loadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	m, err := decode(f)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return m, nil
}

func decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

func isHTTPSource(source string) bool {
	parsed, err := url.Parse(source)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

package images

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comicshelf/internal/manifest"
)

func TestResolve_RelativeAgainstManifestURL(t *testing.T) {
	f := NewFetcher("https://example.com/archive/manifest.json", nil)
	if got := f.Resolve("comics/001.png"); got != "https://example.com/archive/comics/001.png" {
		t.Fatalf("unexpected resolved URL: %s", got)
	}
	if got := f.Resolve("https://cdn.example.com/x.png"); got != "https://cdn.example.com/x.png" {
		t.Fatalf("absolute URL must pass through, got %s", got)
	}
}

func TestResolve_RelativeAgainstLocalManifest(t *testing.T) {
	f := NewFetcher("/srv/comic/manifest.json", nil)
	if got := f.Resolve("comics/001.png"); got != "/srv/comic/comics/001.png" {
		t.Fatalf("unexpected resolved path: %s", got)
	}
}

func TestFetch_Remote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comics/001.png" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer ts.Close()

	f := NewFetcher(ts.URL+"/manifest.json", ts.Client())
	data, err := f.Fetch(context.Background(), "comics/001.png")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected body: %s", data)
	}
}

func TestFetch_RemoteErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := NewFetcher(ts.URL+"/manifest.json", ts.Client())
	if _, err := f.Fetch(context.Background(), "x.png"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetch_LocalFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("local"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	f := NewFetcher(filepath.Join(dir, "manifest.json"), nil)
	data, err := f.Fetch(context.Background(), "a.png")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if string(data) != "local" {
		t.Fatalf("unexpected body: %s", data)
	}
}

func TestCache_PreloadAndGet(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("img"))
	}))
	defer ts.Close()

	cache := NewCache(NewFetcher(ts.URL+"/manifest.json", ts.Client()))
	cache.Preload(context.Background(), "a.png")
	cache.Preload(context.Background(), "a.png")

	if _, ok := cache.Get("a.png"); !ok {
		t.Fatal("expected preloaded image in cache")
	}
	if hits != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", hits)
	}

	if _, err := cache.Fetch(context.Background(), "a.png"); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected cached fetch to skip upstream, got %d hits", hits)
	}
}

func TestPrefetch_WritesFilesAndCountsFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("img"))
	}))
	defer ts.Close()

	entries := []manifest.Entry{
		{ID: "001", Image: "comics/001.png"},
		{ID: "002", Image: "comics/missing.png"},
	}
	dest := t.TempDir()
	f := NewFetcher(ts.URL+"/manifest.json", ts.Client())

	result, err := Prefetch(context.Background(), f, entries, dest, io.Discard)
	if err != nil {
		t.Fatalf("Prefetch returned error: %v", err)
	}
	if result.Fetched != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dest, "001.png")); err != nil {
		t.Fatalf("expected prefetched file: %v", err)
	}
}

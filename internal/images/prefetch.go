package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"comicshelf/internal/manifest"
)

// PrefetchResult summarizes a bulk download run.
type PrefetchResult struct {
	Fetched int
	Failed  int
}

// Prefetch downloads every entry image into destDir, named by entry id, with
// a terminal progress bar. Failures are counted, not fatal: a partially
// warmed cache is still useful.
func Prefetch(ctx context.Context, fetcher *Fetcher, entries []manifest.Entry, destDir string, out io.Writer) (PrefetchResult, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return PrefetchResult{}, fmt.Errorf("create prefetch dir: %w", err)
	}

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("Prefetching images"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWriter(out),
	)

	var result PrefetchResult
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		bar.Describe("Prefetching " + entry.ID.String())

		data, err := fetcher.Fetch(ctx, entry.Image)
		if err != nil {
			result.Failed++
			_ = bar.Add(1)
			continue
		}

		name := entry.ID.String() + filepath.Ext(entry.Image)
		if err := os.WriteFile(filepath.Join(destDir, sanitizeFileName(name)), data, 0o644); err != nil {
			result.Failed++
			_ = bar.Add(1)
			continue
		}
		result.Fetched++
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return result, nil
}

func sanitizeFileName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

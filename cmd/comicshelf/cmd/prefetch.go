package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comicshelf/internal/images"
	"comicshelf/internal/session"
)

var prefetchDest string

var prefetchCmd = &cobra.Command{
	Use:   "prefetch",
	Short: "Download every comic image for offline reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		man, err := loadManifest(cfg)
		if err != nil {
			return err
		}

		sess := session.New(man.Comics)
		if sess.Len() == 0 {
			fmt.Println("No comics yet.")
			return nil
		}

		dest := prefetchDest
		if dest == "" {
			dest = cfg.CacheDir
		}

		fetcher := images.NewFetcher(cfg.Manifest, httpClient(cfg))
		result, err := images.Prefetch(context.Background(), fetcher, sess.Entries(), dest, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Printf("Fetched %d of %d images into %s", result.Fetched, sess.Len(), dest)
		if result.Failed > 0 {
			fmt.Printf(" (%d failed)", result.Failed)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	prefetchCmd.Flags().StringVar(&prefetchDest, "dest", "", "destination directory (defaults to cache_dir)")
	rootCmd.AddCommand(prefetchCmd)
}

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"comicshelf/internal/config"
	"comicshelf/internal/deeplink"
	"comicshelf/internal/gate"
	"comicshelf/internal/images"
	"comicshelf/internal/manifest"
	"comicshelf/internal/storage"
	"comicshelf/internal/tui"
)

var (
	cfgFile      string
	manifestFlag string
	openID       string
)

var rootCmd = &cobra.Command{
	Use:   "comicshelf",
	Short: "Terminal reader for webcomic archives",
	Long: `Comicshelf reads a webcomic archive manifest (a JSON index of comics)
and lets you browse and read the archive from the terminal, with inline
image previews, resume-where-you-left-off and latest-comic shortcuts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "comicshelf.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&manifestFlag, "manifest", "", "manifest URL or file (overrides config)")
	rootCmd.Flags().StringVar(&openID, "open", "", "open the reader at this comic id")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if manifestFlag != "" {
		cfg.Manifest = manifestFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openRepository(cfg *config.Config) (*storage.Repository, error) {
	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.Init(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("storage schema: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("storage write check failed, verify db_path is writable (%s): %w", cfg.DBPath, err)
	}
	return repo, nil
}

func httpClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second}
}

func loadManifest(cfg *config.Config) (*manifest.Manifest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return manifest.NewClient(httpClient(cfg)).Load(ctx, cfg.Manifest)
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	g := gate.New(repo, storage.KeyDisclaimerAccepted)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := g.Load(ctx); err != nil {
		fmt.Printf("warning: could not read the notice acknowledgment (%v)\n", err)
	}

	// --open wins over the persisted resume fragment
	resumeID := openID
	if resumeID == "" {
		if fragment, found, err := repo.Get(ctx, storage.KeySessionFragment); err == nil && found {
			if id, ok := deeplink.Decode(fragment); ok {
				resumeID = id
			}
		}
	}
	cancel()

	model := tui.NewModel(tui.Options{
		Loader:         manifest.NewClient(httpClient(cfg)),
		Store:          repo,
		Gate:           g,
		Fetcher:        images.NewFetcher(cfg.Manifest, httpClient(cfg)),
		Source:         cfg.Manifest,
		OpenID:         resumeID,
		SwipeThreshold: cfg.SwipeThreshold,
		ImagePreview:   cfg.ImagePreview,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"comicshelf/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the comicshelf configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil {
			return fmt.Errorf("%s already exists", cfgFile)
		}
		cfg := config.DefaultConfig()
		cfg.Manifest = manifestFlag
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		if cfg.Manifest == "" {
			fmt.Println("Set manifest to your archive's manifest URL before running comicshelf.")
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if manifestFlag != "" {
			cfg.Manifest = manifestFlag
		}
		fmt.Printf("manifest:             %s\n", cfg.Manifest)
		fmt.Printf("db_path:              %s\n", cfg.DBPath)
		fmt.Printf("cache_dir:            %s\n", cfg.CacheDir)
		fmt.Printf("image_preview:        %t\n", cfg.ImagePreview)
		fmt.Printf("swipe_threshold:      %d\n", cfg.SwipeThreshold)
		fmt.Printf("http_timeout_seconds: %d\n", cfg.HTTPTimeoutSeconds)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

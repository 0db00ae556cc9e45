package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"comicshelf/internal/images"
	"comicshelf/internal/session"
	"comicshelf/internal/tui/view"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the latest comic",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		man, err := loadManifest(cfg)
		if err != nil {
			return err
		}

		entry, ok := session.New(man.Comics).Latest()
		if !ok {
			fmt.Println("No comics yet.")
			return nil
		}

		fmt.Println(view.DisplayTitle(entry))
		if date := view.Sanitize(entry.Date); date != "" {
			fmt.Printf("date:  %s\n", date)
		}
		fmt.Printf("id:    %s\n", view.Sanitize(entry.ID.String()))
		fmt.Printf("image: %s\n", images.NewFetcher(cfg.Manifest, nil).Resolve(entry.Image))
		if alt := view.Sanitize(entry.Alt); alt != "" {
			fmt.Printf("alt:   %s\n", alt)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(latestCmd)
}

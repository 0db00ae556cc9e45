package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"comicshelf/internal/session"
	"comicshelf/internal/tui/view"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the archive in reading order",
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
		for _, entry := range sess.Entries() {
			date := view.Sanitize(entry.Date)
			if date == "" {
				date = "          "
			}
			fmt.Printf("%-12s %s  %s\n", view.Sanitize(entry.ID.String()), date, view.DisplayTitle(entry))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

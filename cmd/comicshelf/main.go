package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"comicshelf/cmd/comicshelf/cmd"
)

func main() {
	// optional .env for COMICSHELF_* overrides
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

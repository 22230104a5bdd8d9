package main

import (
	"fmt"
	"log"
	"os"

	"smartphones/services/smartphone-cli/config"
	"smartphones/services/smartphone-cli/internal/cli"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cli.NewRootCommand(cfg.APIURL).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "moviemuse",
	Short: "CLI client for the moviemuse movie discovery daemon",
	Long: `moviemuse - movie discovery and personal watchlists

Search movies, browse feeds, keep a watchlist, and rate what
you've seen. Talks to a running moviemused daemon.

Run 'moviemused' to start the daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("moviemuse {{.Version}}\n")
}

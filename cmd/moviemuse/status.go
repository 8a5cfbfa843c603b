package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check daemon health",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	health, err := newClient().Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", serverURL, err)
	}

	if jsonOutput {
		printJSON(health)
		return nil
	}

	fmt.Printf("Server:   %s (%s)\n", serverURL, health.Status)
	fmt.Printf("Version:  %s\n", health.Version)
	return nil
}

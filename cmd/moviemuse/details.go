package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var detailsCmd = &cobra.Command{
	Use:   "details <movie-id>",
	Short: "Show full details for a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

func runDetails(cmd *cobra.Command, args []string) error {
	detail, err := newClient().Details(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(detail)
		return nil
	}

	fmt.Printf("%s (%s)\n", detail.Title, detail.Year)
	if detail.Rating > 0 {
		fmt.Printf("Rating:    %.1f/10\n", detail.Rating)
	}
	if detail.RuntimeMinutes > 0 {
		fmt.Printf("Runtime:   %d min\n", detail.RuntimeMinutes)
	}
	if detail.ReleaseDate != "" {
		fmt.Printf("Released:  %s\n", detail.ReleaseDate)
	}
	if len(detail.Genres) > 0 {
		fmt.Printf("Genres:    %s\n", strings.Join(detail.Genres, ", "))
	}
	if detail.Director != "" {
		fmt.Printf("Director:  %s\n", detail.Director)
	}
	if len(detail.Writers) > 0 {
		fmt.Printf("Writers:   %s\n", strings.Join(detail.Writers, ", "))
	}
	if len(detail.Cast) > 0 {
		fmt.Printf("Cast:      %s\n", strings.Join(detail.Cast, ", "))
	}
	if detail.Overview != "" {
		fmt.Printf("\n%s\n", detail.Overview)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recommendationsCmd = &cobra.Command{
	Use:     "recommendations",
	Aliases: []string{"recs"},
	Short:   "Recommendations based on your watchlist",
	Args:    cobra.NoArgs,
	RunE:    runRecommendations,
}

func init() {
	rootCmd.AddCommand(recommendationsCmd)
}

func runRecommendations(cmd *cobra.Command, args []string) error {
	movies, err := newClient().Recommendations(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(movies)
		return nil
	}

	if len(movies) == 0 {
		fmt.Println("No recommendations yet. Add a few movies to your watchlist first.")
		return nil
	}

	fmt.Printf("Because of your watchlist (%d):\n\n", len(movies))
	printMovieTable(movies)
	return nil
}

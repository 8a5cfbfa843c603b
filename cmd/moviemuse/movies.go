package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var moviesCmd = &cobra.Command{
	Use:       "movies <trending|new-releases|top-rated>",
	Short:     "Browse a discovery feed",
	ValidArgs: []string{"trending", "new-releases", "top-rated"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runMovies,
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	moviesCmd.Flags().Int("page", 1, "Result page")
}

func runMovies(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")

	movies, err := newClient().Feed(cmd.Context(), args[0], page)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(movies)
		return nil
	}

	if len(movies) == 0 {
		fmt.Println("Feed is empty")
		return nil
	}

	fmt.Printf("%s (page %d):\n\n", args[0], page)
	printMovieTable(movies)
	return nil
}

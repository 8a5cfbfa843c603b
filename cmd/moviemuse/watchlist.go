package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moviemuse/moviemuse/pkg/client"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage your watchlist",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistList,
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <movie-id>",
	Short: "Add a movie to your watchlist",
	Long: `Add a movie to your watchlist by id.

Movie ids come from 'moviemuse search' or the feed commands,
e.g. "tmdb-603" or "tt0133093". Adding a movie already on the
list updates it in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchlistAdd,
}

var watchlistRemoveCmd = &cobra.Command{
	Use:     "remove <movie-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a movie from your watchlist",
	Args:    cobra.ExactArgs(1),
	RunE:    runWatchlistRemove,
}

func init() {
	rootCmd.AddCommand(watchlistCmd)
	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistAddCmd.Flags().Int("rating", 0, "Your rating, 1-10")
	watchlistAddCmd.Flags().String("review", "", "Your private notes")
}

func runWatchlistList(cmd *cobra.Command, args []string) error {
	entries, err := newClient().Watchlist(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(entries)
		return nil
	}

	printWatchlistHuman(entries)
	return nil
}

func runWatchlistAdd(cmd *cobra.Command, args []string) error {
	rating, _ := cmd.Flags().GetInt("rating")
	review, _ := cmd.Flags().GetString("review")

	c := newClient()

	// Resolve the id so the entry carries full display fields.
	detail, err := c.Details(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("lookup %s: %w", args[0], err)
	}

	var ratingPtr *int
	if rating != 0 {
		ratingPtr = &rating
	}

	entries, err := c.AddToWatchlist(cmd.Context(), detail.Movie, ratingPtr, review)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(entries)
		return nil
	}

	fmt.Printf("Added %s (%s)\n\n", detail.Title, detail.Year)
	printWatchlistHuman(entries)
	return nil
}

func runWatchlistRemove(cmd *cobra.Command, args []string) error {
	entries, err := newClient().RemoveFromWatchlist(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(entries)
		return nil
	}

	fmt.Printf("Removed %s\n\n", args[0])
	printWatchlistHuman(entries)
	return nil
}

func printWatchlistHuman(entries []client.WatchlistEntry) {
	if len(entries) == 0 {
		fmt.Println("Watchlist is empty")
		return
	}

	fmt.Printf("Watchlist (%d):\n\n", len(entries))
	fmt.Printf("  # │ %-40s │ %-6s │ %-6s │ %s\n", "TITLE", "YEAR", "RATING", "ID")
	fmt.Println("────┼──────────────────────────────────────────┼────────┼────────┼─────────────")
	for i, e := range entries {
		rating := "-"
		if e.UserRating != nil {
			rating = fmt.Sprintf("%d/10", *e.UserRating)
		}
		fmt.Printf(" %2d │ %-40s │ %-6s │ %-6s │ %s\n",
			i+1, truncate(e.Movie.Title, 40), e.Movie.Year, rating, e.Movie.ID)
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/search"
	"github.com/moviemuse/moviemuse/pkg/client"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search the movie catalog",
	Long: `Search the movie catalog by title.

Examples:
  moviemuse search "The Matrix"
  moviemuse search --year 1999 "The Matrix"
  moviemuse search "The Matrix 1999"
  moviemuse search -i`,
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("year", 0, "Filter by release year")
	searchCmd.Flags().BoolP("interactive", "i", false, "Type-ahead search session")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		return runInteractiveSearch(cmd.Context())
	}
	if len(args) == 0 {
		return fmt.Errorf("query required (or use --interactive)")
	}

	query := strings.Join(args, " ")
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		query, year = search.ParseQuery(query)
	}

	results, err := newClient().Search(cmd.Context(), query, year)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found")
		return nil
	}

	fmt.Printf("Found %d results for %q:\n\n", len(results), query)
	printMovieTable(results)
	return nil
}

// remoteSearcher adapts the HTTP client to the search controller.
type remoteSearcher struct {
	c *client.Client
}

func (s *remoteSearcher) Search(ctx context.Context, title string, year int) []catalog.Movie {
	results, err := s.c.Search(ctx, title, year)
	if err != nil {
		return nil
	}
	out := make([]catalog.Movie, 0, len(results))
	for _, m := range results {
		id, err := catalog.ParseID(m.ID)
		if err != nil {
			continue
		}
		out = append(out, catalog.Movie{
			ID:        id,
			Title:     m.Title,
			Year:      m.Year,
			PosterURL: m.PosterURL,
			Genres:    m.Genres,
		})
	}
	return out
}

// runInteractiveSearch runs a type-ahead session: each input line
// becomes the live query, results print as they settle, and a line
// typed before the previous fetch lands supersedes it.
func runInteractiveSearch(ctx context.Context) error {
	ctrl := search.NewController(&remoteSearcher{c: newClient()}, nil, nil)
	defer ctrl.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ctrl.Updates() {
			printSearchState(ctrl.Snapshot())
		}
	}()

	fmt.Println("Type to search, empty line to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		ctrl.SetQuery(line)
	}
	return scanner.Err()
}

func printSearchState(state search.State) {
	switch {
	case state.Loading:
		fmt.Println("  searching...")
	case state.Err != "":
		fmt.Printf("  %s\n", state.Err)
	case len(state.Results) > 0:
		fmt.Printf("\n%q:\n", state.Query)
		for i, m := range state.Results {
			fmt.Printf(" %2d. %s (%s)  %s\n", i+1, m.Title, m.Year, m.ID)
		}
		fmt.Print("> ")
	}
}

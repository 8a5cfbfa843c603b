package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/moviemuse/moviemuse/pkg/client"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// prompt reads one line from stdin.
func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// promptRequired prompts until a non-empty value is provided.
func promptRequired(label string) string {
	for {
		if input := prompt(label); input != "" {
			return input
		}
		fmt.Println("  Value required")
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func printMovieTable(movies []client.Movie) {
	fmt.Printf("  # │ %-40s │ %-6s │ %s\n", "TITLE", "YEAR", "ID")
	fmt.Println("────┼──────────────────────────────────────────┼────────┼─────────────")
	for i, m := range movies {
		fmt.Printf(" %2d │ %-40s │ %-6s │ %s\n", i+1, truncate(m.Title, 40), m.Year, m.ID)
	}
}

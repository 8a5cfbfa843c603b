package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantTitle string
		wantYear  int
	}{
		{"no year", "The Matrix", "The Matrix", 0},
		{"trailing year", "The Matrix 1999", "The Matrix", 1999},
		{"parenthesized year", "Heat (1995)", "Heat", 1995},
		{"leading year stays", "2001: A Space Odyssey", "2001: A Space Odyssey", 0},
		{"bare year stays", "1999", "1999", 0},
		{"out of range stays", "Movie 1850", "Movie 1850", 0},
		{"whitespace trimmed", "  Alien 1979  ", "Alien", 1979},
		{"empty", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, year := ParseQuery(tt.in)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

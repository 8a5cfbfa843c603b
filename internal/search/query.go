package search

import (
	"regexp"
	"strconv"
	"strings"
)

var trailingYearRe = regexp.MustCompile(`^(.*\S)\s+\(?((?:19|20)\d{2})\)?$`)

// ParseQuery splits a free-form query into a title and an optional
// release year. Only a trailing year counts, so "2001: A Space
// Odyssey" stays intact while "The Matrix 1999" and "Heat (1995)"
// split.
func ParseQuery(q string) (string, int) {
	q = strings.TrimSpace(q)
	m := trailingYearRe.FindStringSubmatch(q)
	if m == nil {
		return q, 0
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return q, 0
	}
	return strings.TrimSpace(m[1]), year
}

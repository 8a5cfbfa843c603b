package catalog

import (
	"strconv"
	"strings"

	"github.com/moviemuse/moviemuse/internal/omdb"
	"github.com/moviemuse/moviemuse/internal/tmdb"
)

const posterSize = "w500"

// fromTMDB converts an upstream list record. Records without a usable
// poster or a parseable release year are dropped (ok=false).
func fromTMDB(m tmdb.Movie) (Movie, bool) {
	if m.PosterPath == "" || m.Year() == 0 {
		return Movie{}, false
	}
	return Movie{
		ID:        TMDBID(m.ID),
		Title:     m.Title,
		Year:      strconv.Itoa(m.Year()),
		PosterURL: tmdb.PosterURL(m.PosterPath, posterSize),
		Genres:    genresFromIDs(m.GenreIDs),
	}, true
}

// FromTMDBList converts and filters a whole results page.
func FromTMDBList(list []tmdb.Movie) []Movie {
	out := make([]Movie, 0, len(list))
	for _, m := range list {
		if converted, ok := fromTMDB(m); ok {
			out = append(out, converted)
		}
	}
	return out
}

func genresFromIDs(ids []int) []string {
	var names []string
	for _, id := range ids {
		if name := GenreName(id); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// detailFromTMDB builds the full detail record from a TMDB detail response.
func detailFromTMDB(d *tmdb.MovieDetail) *Detail {
	year := "N/A"
	if d.Year() > 0 {
		year = strconv.Itoa(d.Year())
	}
	poster := NoPoster
	if d.PosterPath != "" {
		poster = tmdb.PosterURL(d.PosterPath, posterSize)
	}

	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g.Name)
	}

	detail := &Detail{
		Movie: Movie{
			ID:        TMDBID(d.ID),
			Title:     d.Title,
			Year:      year,
			PosterURL: poster,
			Genres:    genres,
		},
		Overview:       d.Overview,
		RuntimeMinutes: d.Runtime,
		Rating:         d.VoteAverage,
		ReleaseDate:    d.ReleaseDate,
	}

	if d.Credits != nil {
		for _, c := range d.Credits.Cast {
			if len(detail.Cast) >= 10 {
				break
			}
			detail.Cast = append(detail.Cast, c.Name)
		}
		for _, c := range d.Credits.Crew {
			switch c.Job {
			case "Director":
				if detail.Director == "" {
					detail.Director = c.Name
				}
			case "Screenplay", "Writer":
				detail.Writers = append(detail.Writers, c.Name)
			}
		}
	}
	return detail
}

// detailFromOMDB builds the detail record from an OMDB response. OMDB
// uses "N/A" for unknown string fields, which maps directly onto the
// canonical sentinels.
func detailFromOMDB(d *omdb.Detail) *Detail {
	rating, _ := strconv.ParseFloat(d.ImdbRating, 64)
	return &Detail{
		Movie: Movie{
			ID:        IMDBID(d.ImdbID),
			Title:     d.Title,
			Year:      d.Year,
			PosterURL: d.Poster,
			Genres:    splitList(d.Genre),
		},
		Overview:       d.Plot,
		RuntimeMinutes: parseRuntime(d.Runtime),
		Rating:         rating,
		ReleaseDate:    d.Released,
		Cast:           splitList(d.Actors),
		Director:       d.Director,
		Writers:        splitList(d.Writer),
	}
}

// parseRuntime extracts minutes from OMDB's "136 min" format.
func parseRuntime(s string) int {
	field, _, _ := strings.Cut(s, " ")
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0
	}
	return n
}

// splitList splits OMDB's comma-separated lists, treating "N/A" as empty.
func splitList(s string) []string {
	if s == "" || s == "N/A" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

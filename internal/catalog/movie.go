package catalog

// NoPoster is the sentinel used when the upstream record has no usable
// poster image.
const NoPoster = "N/A"

// Movie is the canonical record shape shared by every caller.
type Movie struct {
	ID        ID       `json:"id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"` // "N/A" when unknown
	PosterURL string   `json:"posterUrl"`
	Genres    []string `json:"genres,omitempty"`
}

// Valid reports whether the record carries enough to be displayed:
// id, title, and a real poster. Invalid records are filtered before they
// reach any caller.
func (m Movie) Valid() bool {
	return !m.ID.IsZero() && m.Title != "" && m.PosterURL != "" && m.PosterURL != NoPoster
}

// Detail extends Movie with the fields only the detail view needs.
type Detail struct {
	Movie
	Overview       string   `json:"overview,omitempty"`
	RuntimeMinutes int      `json:"runtimeMinutes,omitempty"`
	Rating         float64  `json:"rating,omitempty"` // source-specific scale
	ReleaseDate    string   `json:"releaseDate,omitempty"`
	Cast           []string `json:"cast,omitempty"`
	Director       string   `json:"director,omitempty"`
	Writers        []string `json:"writers,omitempty"`
}

// FilterValid returns only the displayable records, preserving order.
func FilterValid(movies []Movie) []Movie {
	out := movies[:0:0]
	for _, m := range movies {
		if m.Valid() {
			out = append(out, m)
		}
	}
	return out
}

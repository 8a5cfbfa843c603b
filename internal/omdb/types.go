package omdb

// Detail is OMDB's single-title response. String fields use "N/A" when
// the value is unknown.
type Detail struct {
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"` // "136 min"
	Genre      string `json:"Genre"`   // comma-separated
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
}

// SearchItem is one entry of a title search.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResult is the search envelope.
type SearchResult struct {
	Response     string       `json:"Response"`
	Error        string       `json:"Error,omitempty"`
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

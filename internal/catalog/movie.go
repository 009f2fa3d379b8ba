// Package catalog defines the movie catalog data model and the pure merge
// operations the reconciler applies to it. Field names in the persisted JSON
// are Spanish because the catalog file is shared with the public site and the
// admin tools.
package catalog

// Showtime is a single screening: a calendar date, a wall-clock time and an
// optional ticket purchase link. Dates are ISO-8601 (YYYY-MM-DD) and times
// are HH:MM, so plain string comparison orders both correctly.
type Showtime struct {
	Date      string `json:"fecha"`
	Time      string `json:"hora"`
	TicketURL string `json:"enlace_entradas,omitempty"`
}

// Movie is one film with its metadata and screenings. A movie may come from
// a scraper run or from an operator; operator entries carry either a TMDB id
// or the manual flag, and their populated fields win during merges.
type Movie struct {
	Title         string     `json:"título"`
	OriginalTitle string     `json:"título_original,omitempty"`
	TMDBID        int        `json:"tmdb_id,omitempty"`
	Director      string     `json:"director,omitempty"`
	Duration      string     `json:"duración,omitempty"`
	Cast          string     `json:"actores,omitempty"`
	Synopsis      string     `json:"sinopsis,omitempty"`
	Year          string     `json:"año,omitempty"`
	Poster        string     `json:"cartel,omitempty"`
	Cinema        string     `json:"cine,omitempty"`
	Manual        bool       `json:"manual,omitempty"`
	Showtimes     []Showtime `json:"horarios"`
}

// IsManual reports whether the record was entered by an operator. Historically
// a stored TMDB id was the marker for operator entries; the explicit flag
// covers manual entries that never matched TMDB.
func (m Movie) IsManual() bool {
	return m.Manual || m.TMDBID != 0
}

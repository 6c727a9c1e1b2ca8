package igdb

// IGDBGame is the subset of the IGDB /games payload the catalog uses.
type IGDBGame struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Summary          string  `json:"summary,omitempty"`
	FirstReleaseDate int64   `json:"first_release_date,omitempty"` // unix seconds
	Genres           []Named `json:"genres,omitempty"`
	Platforms        []Named `json:"platforms,omitempty"`
	Cover            *Cover  `json:"cover,omitempty"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies,omitempty"`
}

type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Cover struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type InvolvedCompany struct {
	Company   Named `json:"company"`
	Developer bool  `json:"developer"`
	Publisher bool  `json:"publisher"`
}

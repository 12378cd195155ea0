// Package openalex provides a client for the OpenAlex API and the
// normalization of its work records into the flat paper schema.
//
// OpenAlex is a free, open catalog of scholarly papers, authors, venues,
// institutions, and concepts.
//
// API Documentation: https://docs.openalex.org/
package openalex

// WorksResponse represents the top-level response from the OpenAlex works
// search endpoint.
type WorksResponse struct {
	Meta    Meta   `json:"meta"`
	Results []Work `json:"results"`
}

// AuthorsResponse represents the top-level response from the OpenAlex
// authors search endpoint.
type AuthorsResponse struct {
	Meta    Meta           `json:"meta"`
	Results []AuthorRecord `json:"results"`
}

// Meta contains metadata about the search results including pagination info.
type Meta struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Work represents an academic work (paper) in OpenAlex. Every field may be
// absent in the provider response; absence is a valid state.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	PublicationYear int          `json:"publication_year"`
	CitedByCount    int          `json:"cited_by_count"`
	Authorships     []Authorship `json:"authorships"`
	Concepts        []WorkConcept `json:"concepts"`
	PrimaryLocation *Location    `json:"primary_location"`
	BestOALocation  *Location    `json:"best_oa_location"`
	OpenAccess      *OpenAccess  `json:"open_access"`

	// AbstractInvertedIndex maps each distinct word of the abstract to the
	// zero-based positions at which it occurs.
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// Authorship represents an author's contribution to a work.
type Authorship struct {
	Author       AuthorInfo    `json:"author"`
	Institutions []Institution `json:"institutions"`
}

// AuthorInfo contains basic author information within an authorship.
type AuthorInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// Institution represents an academic institution.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// WorkConcept is a topic assigned to a work with a confidence score.
type WorkConcept struct {
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// Location represents where a work is available.
type Location struct {
	Source         *Source `json:"source"`
	PDFURL         string  `json:"pdf_url"`
	LandingPageURL string  `json:"landing_page_url"`
}

// Source represents a publication venue (journal, repository, etc.).
type Source struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// OpenAccess contains open access information for a work.
type OpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}

// AuthorRecord represents an author entity returned by the authors search
// endpoint.
type AuthorRecord struct {
	ID                    string        `json:"id"`
	DisplayName           string        `json:"display_name"`
	Orcid                 string        `json:"orcid"`
	WorksCount            int           `json:"works_count"`
	CitedByCount          int           `json:"cited_by_count"`
	LastKnownInstitutions []Institution `json:"last_known_institutions"`
}

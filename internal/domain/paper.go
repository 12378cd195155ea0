// Package domain defines the core types and errors of the paper search service.
package domain

// Paper is the flat, consumer-facing representation of an academic work.
// It is built once by the normalizer and never mutated afterwards. Optional
// fields use documented defaults: empty string, zero, or omitted from JSON.
type Paper struct {
	// ID is the provider identifier for the work.
	ID string `json:"id"`
	// Title is the work title, empty if the provider omitted it.
	Title string `json:"title"`
	// Authors lists the work's authors in provider order.
	Authors []Author `json:"authors"`
	// Abstract is the reconstructed plain-text abstract, empty if unavailable.
	Abstract string `json:"abstract"`
	// PublicationYear is omitted from JSON when unknown.
	PublicationYear int `json:"publication_year,omitempty"`
	// DOI is empty if the work has no DOI.
	DOI string `json:"doi"`
	// CitedByCount is non-negative, zero if the provider omitted it.
	CitedByCount int `json:"cited_by_count"`
	// Concepts holds at most five topic entries in provider order.
	Concepts []Concept `json:"concepts"`
	// Source is the hosting venue display name, omitted when unknown.
	Source string `json:"source,omitempty"`
	// IsOpenAccess reports whether the work is freely available.
	IsOpenAccess bool `json:"is_open_access"`
	// OAStatus is the open-access status (gold, green, hybrid, bronze),
	// omitted when the provider gave none.
	OAStatus string `json:"oa_status,omitempty"`
	// FullTextURL points at the best full-text location, omitted when none
	// could be resolved.
	FullTextURL string `json:"full_text_url,omitempty"`
}

// Author is one authorship entry of a paper.
type Author struct {
	// Name is the author display name, empty if absent.
	Name string `json:"name"`
	// ORCID is the researcher identifier, empty if absent.
	ORCID string `json:"orcid"`
	// Institutions lists institution display names in provider order.
	Institutions []string `json:"institutions"`
}

// Concept is a topic assigned to a paper with the provider's confidence score.
type Concept struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

package openalex

import (
	"sort"
	"strings"

	"github.com/openscholar/paper-search-service/internal/domain"
)

const (
	// maxConcepts caps how many concepts are carried onto a normalized
	// paper, taken in provider order.
	maxConcepts = 5

	// maxAbstractWords guards against pathologically large inverted
	// indexes; anything above this reconstructs to an empty abstract.
	maxAbstractWords = 100000
)

// NormalizeWork maps a raw OpenAlex work record onto the flat paper schema.
// It is total: every combination of absent or empty fields yields a valid
// paper with the documented defaults, never an error.
func NormalizeWork(work *Work) domain.Paper {
	if work == nil {
		return domain.Paper{
			Authors:  []domain.Author{},
			Concepts: []domain.Concept{},
		}
	}

	paper := domain.Paper{
		ID:              work.ID,
		Title:           work.Title,
		Authors:         extractAuthors(work.Authorships),
		Abstract:        ReconstructAbstract(work.AbstractInvertedIndex),
		PublicationYear: work.PublicationYear,
		DOI:             work.DOI,
		CitedByCount:    work.CitedByCount,
		Concepts:        extractConcepts(work.Concepts),
		Source:          sourceName(work.PrimaryLocation),
		FullTextURL:     resolveFullTextURL(work),
	}

	if work.OpenAccess != nil {
		paper.IsOpenAccess = work.OpenAccess.IsOA
		paper.OAStatus = work.OpenAccess.OAStatus
	}

	return paper
}

// ReconstructAbstract rebuilds abstract text from an inverted index mapping
// each word to its zero-based positions. Words are placed at their positions
// and joined with single spaces in ascending position order; gaps are
// skipped. Entries are processed in lexicographic word order, so when two
// words claim the same position the greater word wins and identical input
// always reconstructs to the identical string.
func ReconstructAbstract(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}

	ordered := make([]string, 0, len(index))
	for word := range index {
		ordered = append(ordered, word)
	}
	sort.Strings(ordered)

	words := make(map[int]string, len(index))
	for _, word := range ordered {
		for _, pos := range index[word] {
			words[pos] = word
		}
	}
	if len(words) > maxAbstractWords {
		return ""
	}

	positions := make([]int, 0, len(words))
	for pos := range words {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	var b strings.Builder
	for i, pos := range positions {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(words[pos])
	}
	return b.String()
}

// extractAuthors flattens authorships into authors, preserving provider
// order. Missing names and ORCIDs become empty strings; institution entries
// without a display name are skipped.
func extractAuthors(authorships []Authorship) []domain.Author {
	authors := make([]domain.Author, 0, len(authorships))
	for _, authorship := range authorships {
		institutions := make([]string, 0, len(authorship.Institutions))
		for _, inst := range authorship.Institutions {
			if inst.DisplayName != "" {
				institutions = append(institutions, inst.DisplayName)
			}
		}
		authors = append(authors, domain.Author{
			Name:         authorship.Author.DisplayName,
			ORCID:        authorship.Author.Orcid,
			Institutions: institutions,
		})
	}
	return authors
}

// extractConcepts keeps the first maxConcepts concepts in provider order,
// never re-sorted by score.
func extractConcepts(concepts []WorkConcept) []domain.Concept {
	n := len(concepts)
	if n > maxConcepts {
		n = maxConcepts
	}
	out := make([]domain.Concept, 0, n)
	for _, c := range concepts[:n] {
		out = append(out, domain.Concept{
			Name:  c.DisplayName,
			Score: c.Score,
		})
	}
	return out
}

// sourceName returns the display name of a location's source, or empty when
// any level of the nesting is absent.
func sourceName(loc *Location) string {
	if loc == nil || loc.Source == nil {
		return ""
	}
	return loc.Source.DisplayName
}

// resolveFullTextURL picks the best available full-text link: the best open
// access location's PDF, then its landing page, then the primary location's
// PDF. Empty when none is present.
func resolveFullTextURL(work *Work) string {
	if work.BestOALocation != nil {
		if work.BestOALocation.PDFURL != "" {
			return work.BestOALocation.PDFURL
		}
		if work.BestOALocation.LandingPageURL != "" {
			return work.BestOALocation.LandingPageURL
		}
	}
	if work.PrimaryLocation != nil && work.PrimaryLocation.PDFURL != "" {
		return work.PrimaryLocation.PDFURL
	}
	return ""
}

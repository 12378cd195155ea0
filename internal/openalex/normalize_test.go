package openalex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscholar/paper-search-service/internal/domain"
)

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{
			name:  "nil index",
			index: nil,
			want:  "",
		},
		{
			name:  "empty index",
			index: map[string][]int{},
			want:  "",
		},
		{
			name:  "single word",
			index: map[string][]int{"hello": {0}},
			want:  "hello",
		},
		{
			name:  "two words",
			index: map[string][]int{"a": {0}, "b": {1}},
			want:  "a b",
		},
		{
			name: "repeated word",
			index: map[string][]int{
				"This":   {0},
				"is":     {1},
				"a":      {2},
				"sample": {3, 5},
				"the":    {4},
			},
			want: "This is a sample the sample",
		},
		{
			name: "sparse positions are joined without gaps",
			index: map[string][]int{
				"first": {0},
				"last":  {10},
			},
			want: "first last",
		},
		{
			name: "unordered positions",
			index: map[string][]int{
				"world": {1},
				"hello": {0},
				"again": {2},
			},
			want: "hello world again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconstructAbstract(tt.index))
		})
	}
}

func TestReconstructAbstract_DuplicatePositionIsDeterministic(t *testing.T) {
	// Two words claiming the same position collapse to the lexicographically
	// greater word, so repeated reconstructions always agree.
	index := map[string][]int{
		"alpha": {0, 1},
		"beta":  {1},
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, "alpha beta", ReconstructAbstract(index))
	}
}

func TestReconstructAbstract_OversizedIndex(t *testing.T) {
	positions := make([]int, maxAbstractWords+1)
	for i := range positions {
		positions[i] = i
	}
	index := map[string][]int{"word": positions}
	assert.Equal(t, "", ReconstructAbstract(index))
}

func TestNormalizeWork_AllFieldsPresent(t *testing.T) {
	work := &Work{
		ID:              "https://openalex.org/W2741809807",
		DOI:             "https://doi.org/10.7717/peerj.4375",
		Title:           "The state of OA",
		PublicationYear: 2018,
		CitedByCount:    1024,
		AbstractInvertedIndex: map[string][]int{
			"This":   {0},
			"is":     {1},
			"a":      {2},
			"sample": {3},
		},
		Authorships: []Authorship{
			{
				Author: AuthorInfo{DisplayName: "Heather Piwowar", Orcid: "https://orcid.org/0000-0003-1613-5981"},
				Institutions: []Institution{
					{DisplayName: "Impactstory"},
					{DisplayName: "University of Pittsburgh"},
				},
			},
			{
				Author: AuthorInfo{DisplayName: "Jason Priem"},
			},
		},
		Concepts: []WorkConcept{
			{DisplayName: "Open access", Score: 0.92},
			{DisplayName: "Scholarly communication", Score: 0.85},
		},
		PrimaryLocation: &Location{
			Source: &Source{DisplayName: "PeerJ"},
			PDFURL: "https://peerj.com/articles/4375.pdf",
		},
		BestOALocation: &Location{
			PDFURL:         "https://peerj.com/articles/4375-best.pdf",
			LandingPageURL: "https://peerj.com/articles/4375",
		},
		OpenAccess: &OpenAccess{IsOA: true, OAStatus: "gold"},
	}

	paper := NormalizeWork(work)

	assert.Equal(t, "https://openalex.org/W2741809807", paper.ID)
	assert.Equal(t, "The state of OA", paper.Title)
	assert.Equal(t, "This is a sample", paper.Abstract)
	assert.Equal(t, 2018, paper.PublicationYear)
	assert.Equal(t, "https://doi.org/10.7717/peerj.4375", paper.DOI)
	assert.Equal(t, 1024, paper.CitedByCount)
	assert.Equal(t, "PeerJ", paper.Source)
	assert.True(t, paper.IsOpenAccess)
	assert.Equal(t, "gold", paper.OAStatus)
	assert.Equal(t, "https://peerj.com/articles/4375-best.pdf", paper.FullTextURL)

	require.Len(t, paper.Authors, 2)
	assert.Equal(t, "Heather Piwowar", paper.Authors[0].Name)
	assert.Equal(t, "https://orcid.org/0000-0003-1613-5981", paper.Authors[0].ORCID)
	assert.Equal(t, []string{"Impactstory", "University of Pittsburgh"}, paper.Authors[0].Institutions)
	assert.Equal(t, "Jason Priem", paper.Authors[1].Name)
	assert.Equal(t, "", paper.Authors[1].ORCID)
	assert.Empty(t, paper.Authors[1].Institutions)

	require.Len(t, paper.Concepts, 2)
	assert.Equal(t, "Open access", paper.Concepts[0].Name)
	assert.InDelta(t, 0.92, paper.Concepts[0].Score, 1e-9)
}

func TestNormalizeWork_EmptyWork(t *testing.T) {
	paper := NormalizeWork(&Work{})

	assert.Equal(t, "", paper.ID)
	assert.Equal(t, "", paper.Title)
	assert.Equal(t, "", paper.Abstract)
	assert.Equal(t, 0, paper.PublicationYear)
	assert.Equal(t, "", paper.DOI)
	assert.Equal(t, 0, paper.CitedByCount)
	assert.Equal(t, "", paper.Source)
	assert.False(t, paper.IsOpenAccess)
	assert.Equal(t, "", paper.OAStatus)
	assert.Equal(t, "", paper.FullTextURL)
	assert.NotNil(t, paper.Authors)
	assert.Empty(t, paper.Authors)
	assert.NotNil(t, paper.Concepts)
	assert.Empty(t, paper.Concepts)
}

func TestNormalizeWork_NilWork(t *testing.T) {
	paper := NormalizeWork(nil)

	assert.Equal(t, domain.Paper{Authors: []domain.Author{}, Concepts: []domain.Concept{}}, paper)
}

func TestNormalizeWork_ConceptsCappedAtFive(t *testing.T) {
	work := &Work{
		Concepts: []WorkConcept{
			{DisplayName: "one", Score: 0.1},
			{DisplayName: "two", Score: 0.9},
			{DisplayName: "three", Score: 0.5},
			{DisplayName: "four", Score: 0.4},
			{DisplayName: "five", Score: 0.8},
			{DisplayName: "six", Score: 0.99},
		},
	}

	paper := NormalizeWork(work)

	require.Len(t, paper.Concepts, 5)
	// Provider order is preserved, not re-sorted by score.
	assert.Equal(t, "one", paper.Concepts[0].Name)
	assert.Equal(t, "five", paper.Concepts[4].Name)
}

func TestNormalizeWork_FullTextURLPriority(t *testing.T) {
	tests := []struct {
		name string
		work *Work
		want string
	}{
		{
			name: "best oa pdf wins",
			work: &Work{
				BestOALocation:  &Location{PDFURL: "https://example.org/best.pdf", LandingPageURL: "https://example.org/landing"},
				PrimaryLocation: &Location{PDFURL: "https://example.org/primary.pdf"},
			},
			want: "https://example.org/best.pdf",
		},
		{
			name: "landing page when best oa has no pdf",
			work: &Work{
				BestOALocation:  &Location{LandingPageURL: "https://example.org/landing"},
				PrimaryLocation: &Location{PDFURL: "https://example.org/primary.pdf"},
			},
			want: "https://example.org/landing",
		},
		{
			name: "primary pdf when no best oa location",
			work: &Work{
				PrimaryLocation: &Location{PDFURL: "https://example.org/primary.pdf"},
			},
			want: "https://example.org/primary.pdf",
		},
		{
			name: "empty when nothing available",
			work: &Work{
				PrimaryLocation: &Location{LandingPageURL: "https://example.org/landing-only"},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWork(tt.work).FullTextURL)
		})
	}
}

func TestNormalizeWork_SourceRequiresFullNesting(t *testing.T) {
	assert.Equal(t, "", NormalizeWork(&Work{}).Source)
	assert.Equal(t, "", NormalizeWork(&Work{PrimaryLocation: &Location{}}).Source)
	assert.Equal(t, "Nature", NormalizeWork(&Work{
		PrimaryLocation: &Location{Source: &Source{DisplayName: "Nature"}},
	}).Source)
}

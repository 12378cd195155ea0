package openalex

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscholar/paper-search-service/internal/domain"
	"github.com/openscholar/paper-search-service/internal/observability"
)

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name      string
		params    SearchParams
		wantField string
	}{
		{
			name:   "valid defaults",
			params: DefaultSearchParams("machine learning"),
		},
		{
			name:      "empty query",
			params:    SearchParams{Query: "", PerPage: 25, Page: 1},
			wantField: "query",
		},
		{
			name:      "whitespace query",
			params:    SearchParams{Query: "   ", PerPage: 25, Page: 1},
			wantField: "query",
		},
		{
			name:      "per_page too small",
			params:    SearchParams{Query: "q", PerPage: 0, Page: 1},
			wantField: "per_page",
		},
		{
			name:      "per_page too large",
			params:    SearchParams{Query: "q", PerPage: 201, Page: 1},
			wantField: "per_page",
		},
		{
			name:      "page zero",
			params:    SearchParams{Query: "q", PerPage: 25, Page: 0},
			wantField: "page",
		},
		{
			name:      "invalid oa_status",
			params:    SearchParams{Query: "q", PerPage: 25, Page: 1, OAStatus: "diamond"},
			wantField: "oa_status",
		},
		{
			name:   "valid oa_status",
			params: SearchParams{Query: "q", PerPage: 25, Page: 1, OAStatus: "green"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestSearchWorks_ValidationFailsWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.SearchWorks(context.Background(), SearchParams{Query: "  ", PerPage: 25, Page: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int32(0), hits.Load())
}

func TestSearchWorks_RequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta":{"count":0,"page":1,"per_page":25},"results":[]}`))
	}))
	defer server.Close()

	client := New(Config{
		BaseURL: server.URL,
		Email:   "contact@openscholar.org",
		APIKey:  "secret-key",
	})

	params := DefaultSearchParams("quantum computing")
	params.OpenAccessOnly = true
	params.OAStatus = "gold"

	works, err := client.SearchWorks(context.Background(), params)
	require.NoError(t, err)
	assert.Empty(t, works)

	assert.Equal(t, "/works", gotPath)
	assert.Equal(t, []string{"quantum computing"}, gotQuery["search"])
	assert.Equal(t, []string{"is_retracted:false,is_oa:true,oa_status:gold"}, gotQuery["filter"])
	assert.Equal(t, []string{"25"}, gotQuery["per_page"])
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"contact@openscholar.org"}, gotQuery["mailto"])
	assert.Equal(t, []string{"secret-key"}, gotQuery["api_key"])
}

func TestSearchWorks_NoFilterWhenAllTogglesOff(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"meta":{},"results":[]}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.SearchWorks(context.Background(), SearchParams{Query: "q", PerPage: 10, Page: 2})
	require.NoError(t, err)

	_, hasFilter := gotQuery["filter"]
	assert.False(t, hasFilter)
	assert.Equal(t, []string{"2"}, gotQuery["page"])
}

func TestSearchWorks_DecodesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"meta": {"count": 1, "page": 1, "per_page": 25},
			"results": [{
				"id": "https://openalex.org/W1",
				"title": "Attention Is All You Need",
				"publication_year": 2017,
				"cited_by_count": 90000,
				"abstract_inverted_index": {"deep": [0], "learning": [1]},
				"authorships": [{"author": {"display_name": "Ashish Vaswani"}}],
				"open_access": {"is_oa": true, "oa_status": "green"}
			}]
		}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	works, err := client.SearchWorks(context.Background(), DefaultSearchParams("attention"))
	require.NoError(t, err)
	require.Len(t, works, 1)

	work := works[0]
	assert.Equal(t, "https://openalex.org/W1", work.ID)
	assert.Equal(t, "Attention Is All You Need", work.Title)
	assert.Equal(t, 2017, work.PublicationYear)
	require.NotNil(t, work.OpenAccess)
	assert.Equal(t, "green", work.OpenAccess.OAStatus)
	assert.Equal(t, "deep learning", ReconstructAbstract(work.AbstractInvertedIndex))
}

func TestSearchWorks_ProviderErrorOnHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.SearchWorks(context.Background(), DefaultSearchParams("anything"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	var pe *domain.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "OpenAlex", pe.Source)
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
}

func TestSearchWorks_FailureLogsProviderContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	var buf bytes.Buffer
	client := New(Config{BaseURL: server.URL, Logger: zerolog.New(&buf)})

	ctx := observability.WithQuery(context.Background(), "machine learning")
	_, err := client.SearchWorks(ctx, DefaultSearchParams("machine learning"))
	require.Error(t, err)

	logged := buf.String()
	assert.Contains(t, logged, `"provider":"OpenAlex"`)
	assert.Contains(t, logged, `"endpoint":"/works"`)
	assert.Contains(t, logged, `"query":"machine learning"`)
}

func TestSearchWorks_ProviderErrorOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meta": not json`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.SearchWorks(context.Background(), DefaultSearchParams("anything"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestSearchWorks_ProviderErrorOnTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	_, err := client.SearchWorks(context.Background(), DefaultSearchParams("slow"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestSearchAuthors(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"meta": {"count": 1, "page": 1, "per_page": 25},
			"results": [{
				"id": "https://openalex.org/A5023888391",
				"display_name": "Heather Piwowar",
				"orcid": "https://orcid.org/0000-0003-1613-5981",
				"works_count": 70,
				"cited_by_count": 3000,
				"last_known_institutions": [{"display_name": "Impactstory"}]
			}]
		}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, Email: "contact@openscholar.org"})
	authors, err := client.SearchAuthors(context.Background(), DefaultAuthorSearchParams("piwowar"))
	require.NoError(t, err)

	assert.Equal(t, "/authors", gotPath)
	assert.Equal(t, []string{"piwowar"}, gotQuery["search"])
	assert.Equal(t, []string{"contact@openscholar.org"}, gotQuery["mailto"])

	require.Len(t, authors, 1)
	assert.Equal(t, "Heather Piwowar", authors[0].DisplayName)
	assert.Equal(t, 70, authors[0].WorksCount)
	require.Len(t, authors[0].LastKnownInstitutions, 1)
	assert.Equal(t, "Impactstory", authors[0].LastKnownInstitutions[0].DisplayName)
}

func TestSearchAuthors_ValidationError(t *testing.T) {
	client := New(Config{})
	_, err := client.SearchAuthors(context.Background(), AuthorSearchParams{Query: "", PerPage: 25, Page: 1})

	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "query", ve.Field)
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, DefaultBurstSize, cfg.BurstSize)
}

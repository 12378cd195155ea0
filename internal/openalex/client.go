package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/openscholar/paper-search-service/internal/domain"
	"github.com/openscholar/paper-search-service/internal/observability"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// OpenAlex polite pool (with email) allows higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPerPage is the default page size for search requests.
	DefaultPerPage = 25

	// MaxPerPage is the largest page size the OpenAlex API accepts.
	MaxPerPage = 200

	// providerName identifies this provider in errors and logs.
	providerName = "OpenAlex"
)

var validate = validator.New()

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool.
	// Providing an email grants access to higher rate limits.
	// See: https://docs.openalex.org/how-to-use-the-api/rate-limits-and-authentication
	Email string

	// APIKey is an optional OpenAlex premium API key.
	APIKey string

	// Timeout is the request timeout.
	// Defaults to 30 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	// Defaults to 10 req/sec (polite pool with email gets higher).
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	// Defaults to 10.
	BurstSize int

	// Metrics records per-request provider metrics when set.
	Metrics *observability.Metrics

	// Logger receives per-request provider logs. The zero value disables
	// client logging.
	Logger zerolog.Logger
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
}

// SearchParams controls a works search. Use DefaultSearchParams to obtain
// a params value with the standard filters applied.
type SearchParams struct {
	// Query is the full-text search query. Required.
	Query string `validate:"required"`

	// PerPage is the number of results per page, between 1 and 200.
	PerPage int `validate:"min=1,max=200"`

	// Page is the 1-indexed page number.
	Page int `validate:"min=1"`

	// ExcludeRetracted filters out retracted works.
	ExcludeRetracted bool

	// OpenAccessOnly restricts results to open access works.
	OpenAccessOnly bool

	// OAStatus restricts results to a single open access status.
	OAStatus string `validate:"omitempty,oneof=gold green hybrid bronze"`
}

// DefaultSearchParams returns search params for the given query with the
// default page size and retracted works excluded.
func DefaultSearchParams(query string) SearchParams {
	return SearchParams{
		Query:            query,
		PerPage:          DefaultPerPage,
		Page:             1,
		ExcludeRetracted: true,
	}
}

// Validate checks the params and returns a domain validation error
// describing the first violation found.
func (p SearchParams) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return domain.NewValidationError("query", "must be a non-empty string")
	}
	return translateValidationError(validate.Struct(p))
}

// AuthorSearchParams controls an author search.
type AuthorSearchParams struct {
	// Query is the author name search query. Required.
	Query string `validate:"required"`

	// PerPage is the number of results per page, between 1 and 200.
	PerPage int `validate:"min=1,max=200"`

	// Page is the 1-indexed page number.
	Page int `validate:"min=1"`
}

// DefaultAuthorSearchParams returns author search params for the given
// query with the default page size.
func DefaultAuthorSearchParams(query string) AuthorSearchParams {
	return AuthorSearchParams{
		Query:   query,
		PerPage: DefaultPerPage,
		Page:    1,
	}
}

// Validate checks the params and returns a domain validation error
// describing the first violation found.
func (p AuthorSearchParams) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return domain.NewValidationError("query", "must be a non-empty string")
	}
	return translateValidationError(validate.Struct(p))
}

// translateValidationError maps validator failures onto domain validation
// errors with request-parameter field names.
func translateValidationError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return domain.NewValidationError("params", err.Error())
	}
	fe := errs[0]
	switch fe.Field() {
	case "Query":
		return domain.NewValidationError("query", "must be a non-empty string")
	case "PerPage":
		return domain.NewValidationError("per_page", fmt.Sprintf("must be between 1 and %d", MaxPerPage))
	case "Page":
		return domain.NewValidationError("page", "must be a positive integer")
	case "OAStatus":
		return domain.NewValidationError("oa_status", "must be one of gold, green, hybrid, bronze")
	default:
		return domain.NewValidationError(strings.ToLower(fe.Field()), "is invalid")
	}
}

// Client is an OpenAlex API client. It rate-limits outgoing requests and
// wraps every transport or provider failure in a domain provider error, so
// callers never see raw HTTP errors.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	userAgent := "PaperSearchService/1.0"
	if cfg.Email != "" {
		userAgent += " (mailto:" + cfg.Email + ")"
	}

	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.BurstSize),
		userAgent:  userAgent,
	}
}

// SearchWorks queries the works endpoint and returns the raw work records
// for the requested page. Params are validated before any request is made.
func (c *Client) SearchWorks(ctx context.Context, params SearchParams) ([]Work, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("search", strings.TrimSpace(params.Query))
	if filter := buildWorksFilter(params); filter != "" {
		query.Set("filter", filter)
	}
	query.Set("per_page", strconv.Itoa(params.PerPage))
	query.Set("page", strconv.Itoa(params.Page))

	var resp WorksResponse
	if err := c.get(ctx, "/works", query, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchAuthors queries the authors endpoint and returns the raw author
// records for the requested page.
func (c *Client) SearchAuthors(ctx context.Context, params AuthorSearchParams) ([]AuthorRecord, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("search", strings.TrimSpace(params.Query))
	query.Set("per_page", strconv.Itoa(params.PerPage))
	query.Set("page", strconv.Itoa(params.Page))

	var resp AuthorsResponse
	if err := c.get(ctx, "/authors", query, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// buildWorksFilter composes the comma-joined filter expression. Each clause
// narrows the result set; OpenAlex treats commas as AND.
func buildWorksFilter(params SearchParams) string {
	var filters []string
	if params.ExcludeRetracted {
		filters = append(filters, "is_retracted:false")
	}
	if params.OpenAccessOnly {
		filters = append(filters, "is_oa:true")
	}
	if params.OAStatus != "" {
		filters = append(filters, "oa_status:"+params.OAStatus)
	}
	return strings.Join(filters, ",")
}

// get performs a rate-limited GET against the given endpoint and decodes
// the JSON response body into out.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	logger := c.requestLogger(ctx, endpoint)

	requestURL, err := c.buildURL(endpoint, query)
	if err != nil {
		return domain.NewProviderError(providerName, 0, "building request URL", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.NewProviderError(providerName, 0, "waiting for rate limiter", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return domain.NewProviderError(providerName, 0, "creating request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordRequest(endpoint, start, true)
		logger.Warn().Err(err).Msg("provider request failed")
		return domain.NewProviderError(providerName, 0, "executing request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recordRequest(endpoint, start, true)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		logger.Warn().Int("status", resp.StatusCode).Msg("provider returned non-200 status")
		return domain.NewProviderError(providerName, resp.StatusCode, strings.TrimSpace(string(body)), nil)
	}

	// Limit body to 10MB to prevent resource exhaustion.
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(out); err != nil {
		c.recordRequest(endpoint, start, true)
		logger.Warn().Err(err).Msg("decoding provider response failed")
		return domain.NewProviderError(providerName, resp.StatusCode, "decoding response", err)
	}
	c.recordRequest(endpoint, start, false)
	logger.Debug().Dur("duration", time.Since(start)).Msg("provider request completed")
	return nil
}

// requestLogger builds a logger scoped to one provider call, carrying the
// search query when the caller placed one on the context.
func (c *Client) requestLogger(ctx context.Context, endpoint string) zerolog.Logger {
	logger := observability.WithProviderContext(c.config.Logger, providerName, endpoint)
	if query := observability.QueryFromContext(ctx); query != "" {
		logger = logger.With().Str("query", query).Logger()
	}
	return logger
}

// recordRequest reports one provider request to the metrics, when configured.
func (c *Client) recordRequest(endpoint string, start time.Time, failed bool) {
	if c.config.Metrics == nil {
		return
	}
	c.config.Metrics.RecordProviderRequest(strings.TrimPrefix(endpoint, "/"), time.Since(start).Seconds(), failed)
}

// buildURL joins the configured base URL with the endpoint path and query,
// adding the polite pool and authentication parameters.
func (c *Client) buildURL(endpoint string, query url.Values) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	baseURL.Path = endpoint

	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}
	if c.config.APIKey != "" {
		query.Set("api_key", c.config.APIKey)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

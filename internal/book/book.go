// Package book provides the request, cache key and record types shared by the
// fetcher, the normalizer and the result cache.
package book

import (
	"fmt"
	"strconv"
	"strings"
)

// Placeholders used when the upstream source omits a field.
const (
	NoTitle           = "No Title"
	NoAuthors         = "No Authors"
	NoPublicationDate = "No Publication Date"
	NoSummary         = "No Summary"
)

// DefaultMaxResults is used when a request does not set a result limit.
const DefaultMaxResults = 10

// PrintType filters search results by publication type.
type PrintType string

const (
	PrintTypeAll       PrintType = "all"
	PrintTypeBooks     PrintType = "books"
	PrintTypeMagazines PrintType = "magazines"
)

// ParsePrintType converts a user supplied value into a PrintType.
// An empty string maps to PrintTypeAll.
func ParsePrintType(s string) (PrintType, error) {
	switch PrintType(strings.ToLower(strings.TrimSpace(s))) {
	case "", PrintTypeAll:
		return PrintTypeAll, nil
	case PrintTypeBooks:
		return PrintTypeBooks, nil
	case PrintTypeMagazines:
		return PrintTypeMagazines, nil
	}
	return "", fmt.Errorf("%w: unknown print type %q", ErrInvalidRequest, s)
}

// SearchRequest is an immutable description of one volume search.
// Two requests are equal exactly when all three fields are equal.
type SearchRequest struct {
	Query      string
	MaxResults int
	PrintType  PrintType
}

// NewSearchRequest validates the parameters and fills in defaults.
// maxResults of 0 means DefaultMaxResults; negative values are rejected.
func NewSearchRequest(query string, maxResults int, printType PrintType) (SearchRequest, error) {
	if strings.TrimSpace(query) == "" {
		return SearchRequest{}, fmt.Errorf("%w: query is required", ErrInvalidRequest)
	}
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 0 {
		return SearchRequest{}, fmt.Errorf("%w: max results must be positive, got %d", ErrInvalidRequest, maxResults)
	}
	pt, err := ParsePrintType(string(printType))
	if err != nil {
		return SearchRequest{}, err
	}

	return SearchRequest{Query: query, MaxResults: maxResults, PrintType: pt}, nil
}

// CacheKey indexes stored results.
type CacheKey string

// keySeparator joins the request fields. Occurrences inside the query are escaped.
const keySeparator = "_"

var keyEscaper = strings.NewReplacer(`\`, `\\`, keySeparator, `\`+keySeparator)

// Key derives the cache key: <query>_<maxResults>_<printType>.
// Backslashes and underscores in the query are escaped so distinct requests never share a key.
func (r SearchRequest) Key() CacheKey {
	return CacheKey(keyEscaper.Replace(r.Query) +
		keySeparator + strconv.Itoa(r.MaxResults) +
		keySeparator + string(r.PrintType))
}

func (r SearchRequest) String() string {
	return fmt.Sprintf("%q (max %d, %s)", r.Query, r.MaxResults, r.PrintType)
}

// Record is the normalized summary of one search result.
type Record struct {
	Title         string `json:"title" yaml:"title"`
	Authors       string `json:"authors" yaml:"authors"`
	PublishedYear string `json:"publishedYear" yaml:"publishedYear"`
	Summary       string `json:"summary" yaml:"summary"`
}

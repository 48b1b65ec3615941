package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchRequestDefaults(t *testing.T) {
	req, err := NewSearchRequest("Python programming", 0, "")
	require.NoError(t, err)

	assert.Equal(t, "Python programming", req.Query)
	assert.Equal(t, DefaultMaxResults, req.MaxResults)
	assert.Equal(t, PrintTypeAll, req.PrintType)
}

func TestNewSearchRequestValidation(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		maxResults int
		printType  PrintType
	}{
		{name: "empty query", query: "", maxResults: 10, printType: PrintTypeAll},
		{name: "blank query", query: "   ", maxResults: 10, printType: PrintTypeAll},
		{name: "negative max results", query: "go", maxResults: -1, printType: PrintTypeAll},
		{name: "unknown print type", query: "go", maxResults: 10, printType: "comics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSearchRequest(tt.query, tt.maxResults, tt.printType)
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestParsePrintType(t *testing.T) {
	pt, err := ParsePrintType(" Books ")
	require.NoError(t, err)
	assert.Equal(t, PrintTypeBooks, pt)

	pt, err = ParsePrintType("")
	require.NoError(t, err)
	assert.Equal(t, PrintTypeAll, pt)

	_, err = ParsePrintType("audio")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestKeyCanonicalForm(t *testing.T) {
	req, err := NewSearchRequest("Python programming", 10, PrintTypeAll)
	require.NoError(t, err)

	assert.Equal(t, CacheKey("Python programming_10_all"), req.Key())
}

func TestKeyDeterministic(t *testing.T) {
	a := SearchRequest{Query: "dune", MaxResults: 5, PrintType: PrintTypeBooks}
	b := SearchRequest{Query: "dune", MaxResults: 5, PrintType: PrintTypeBooks}

	require.Equal(t, a, b)
	assert.Equal(t, a.Key(), b.Key())
}

func TestKeyNoCollisions(t *testing.T) {
	// Each pair would collide under naive concatenation.
	pairs := [][2]SearchRequest{
		{
			{Query: "a_1", MaxResults: 2, PrintType: PrintTypeAll},
			{Query: "a", MaxResults: 1, PrintType: PrintTypeAll},
		},
		{
			{Query: `x\`, MaxResults: 3, PrintType: PrintTypeBooks},
			{Query: `x\_3`, MaxResults: 3, PrintType: PrintTypeBooks},
		},
		{
			{Query: "go_10_all", MaxResults: 10, PrintType: PrintTypeAll},
			{Query: "go", MaxResults: 10, PrintType: PrintTypeAll},
		},
	}

	for _, p := range pairs {
		assert.NotEqual(t, p[0].Key(), p[1].Key(), "%v vs %v", p[0], p[1])
	}

	variants := []SearchRequest{
		{Query: "go", MaxResults: 10, PrintType: PrintTypeAll},
		{Query: "go", MaxResults: 11, PrintType: PrintTypeAll},
		{Query: "go", MaxResults: 10, PrintType: PrintTypeBooks},
		{Query: "Go", MaxResults: 10, PrintType: PrintTypeAll},
		{Query: "go_", MaxResults: 10, PrintType: PrintTypeAll},
		{Query: `go\`, MaxResults: 10, PrintType: PrintTypeAll},
	}
	seen := make(map[CacheKey]SearchRequest)
	for _, v := range variants {
		if prev, ok := seen[v.Key()]; ok {
			t.Fatalf("key collision between %v and %v", prev, v)
		}
		seen[v.Key()] = v
	}
}

func TestResult(t *testing.T) {
	ok := Result{Records: []Record{{Title: "Dune"}}}
	assert.True(t, ok.OK())
	assert.False(t, ok.Empty())

	none := Result{}
	assert.True(t, none.OK())
	assert.True(t, none.Empty())

	failed := Result{Err: ErrInvalidRequest}
	assert.False(t, failed.OK())
	assert.True(t, failed.Empty())
}

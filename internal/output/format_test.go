package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleRecords = []book.Record{
	{
		Title:         "Learning Python",
		Authors:       "Mark Lutz",
		PublishedYear: "2013",
		Summary:       "Get a comprehensive, in-depth introduction to the core Python language.",
	},
	{
		Title:         "Untitled Notes",
		Authors:       book.NoAuthors,
		PublishedYear: book.NoPublicationDate,
		Summary:       book.NoSummary,
	},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "csv", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid formats are: text, json, yaml, markdown")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRecords, FormatJSON))

	var decoded []book.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRecords, decoded)
	assert.Contains(t, buf.String(), `"publishedYear": "2013"`)
}

func TestRenderJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRecords, FormatYAML))

	var decoded []book.Record
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleRecords, decoded)
	assert.Contains(t, buf.String(), "publishedYear: \"2013\"")
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRecords, FormatText))

	out := buf.String()
	assert.Contains(t, out, "1. Learning Python")
	assert.Contains(t, out, "Authors: Mark Lutz")
	assert.Contains(t, out, "Published: 2013")
	assert.Contains(t, out, "2. Untitled Notes")
	assert.Contains(t, out, "Published: No Publication Date")
	assert.NotContains(t, out, "\x1b[", "non-terminal writers get no escape codes")
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []book.Record{}, FormatText))
	assert.Equal(t, "No books found.\n", buf.String())
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleRecords, Format("xml"))
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestTruncateSummary(t *testing.T) {
	assert.Equal(t, "short text", truncateSummary("short   text", 20))

	long := strings.Repeat("ä", 30)
	got := truncateSummary(long, 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestWriteFile(t *testing.T) {
	env := testutil.NewTestEnv(t)

	for _, format := range ValidFormats {
		t.Run(string(format), func(t *testing.T) {
			rel := "out/books." + string(format)
			path := env.Path(rel)

			written, err := WriteFile(path, sampleRecords, format, false)
			require.NoError(t, err)
			assert.True(t, written)
			assert.Contains(t, env.ReadFileString(rel), "Learning Python")

			written, err = WriteFile(path, []book.Record{}, format, false)
			require.NoError(t, err)
			assert.False(t, written, "existing file must not be replaced without overwrite")
			assert.Contains(t, env.ReadFileString(rel), "Learning Python")

			written, err = WriteFile(path, []book.Record{}, format, true)
			require.NoError(t, err)
			assert.True(t, written)
			assert.NotContains(t, env.ReadFileString(rel), "Learning Python")
		})
	}
}

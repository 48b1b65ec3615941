package googlebooks

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/errors"
)

// volumesResponse matches the Google Books volume search response.
// Pointer fields distinguish "absent" from "present but empty".
type volumesResponse struct {
	TotalItems int           `json:"totalItems"`
	Items      []volumeEntry `json:"items"`
}

type volumeEntry struct {
	VolumeInfo *volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title         *string   `json:"title"`
	Authors       *[]string `json:"authors"`
	PublishedDate *string   `json:"publishedDate"`
	Description   *string   `json:"description"`
}

// yearLength is how many leading characters of publishedDate are kept.
const yearLength = 4

// Normalize extracts one book.Record per item in a raw search payload.
//
// Parsing is all-or-nothing: malformed JSON or a field of the wrong type
// anywhere in the payload yields an empty slice and a *errors.ParseError,
// never a partial result. A payload without "items" is a valid empty result.
func Normalize(raw []byte) ([]book.Record, error) {
	var resp volumesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		slog.Warn("Failed to parse Google Books response", "error", err, "bytes", len(raw))
		return []book.Record{}, errors.NewParseError("decoding volumes response", err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		slog.Warn("Google Books response is not a JSON object", "bytes", len(raw))
		return []book.Record{}, errors.NewParseError("volumes response is not an object", nil)
	}

	records := make([]book.Record, 0, len(resp.Items))
	for _, item := range resp.Items {
		records = append(records, normalizeVolume(item.VolumeInfo))
	}

	slog.Debug("Normalized Google Books response", "total_items", resp.TotalItems, "records", len(records))
	return records, nil
}

func normalizeVolume(info *volumeInfo) book.Record {
	if info == nil {
		info = &volumeInfo{}
	}

	record := book.Record{
		Title:         book.NoTitle,
		Authors:       book.NoAuthors,
		PublishedYear: book.NoPublicationDate,
		Summary:       book.NoSummary,
	}

	if info.Title != nil {
		record.Title = *info.Title
	}
	if info.Authors != nil {
		record.Authors = strings.Join(*info.Authors, ", ")
	}
	if info.PublishedDate != nil {
		record.PublishedYear = publishedYear(*info.PublishedDate)
	}
	if info.Description != nil {
		record.Summary = *info.Description
	}

	return record
}

// publishedYear truncates a date to its first four characters without validating it.
// "1999-05-01" gives "1999", "85" stays "85".
func publishedYear(date string) string {
	runes := []rune(date)
	if len(runes) <= yearLength {
		return date
	}
	return string(runes[:yearLength])
}

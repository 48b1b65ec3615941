// Package output renders book records for the terminal and for files.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/fileutil"
	"gopkg.in/yaml.v3"
)

// Format selects how records are rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ValidFormats lists every supported format in display order.
var ValidFormats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat accepts a format name case-insensitively. "md" is an alias for markdown.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range ValidFormats {
		if string(f) == name {
			return f, nil
		}
	}

	valid := make([]string, len(ValidFormats))
	for i, f := range ValidFormats {
		valid[i] = string(f)
	}
	return "", fmt.Errorf("invalid output format '%s'; valid formats are: %s", s, strings.Join(valid, ", "))
}

// Render writes records to w in the given format.
func Render(w io.Writer, records []book.Record, format Format) error {
	if records == nil {
		records = []book.Record{}
	}

	switch format {
	case FormatText:
		return renderText(w, records)
	case FormatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, NewMarkdownBuilder().AddRecords(records).Build())
		return err
	default:
		return fmt.Errorf("unsupported output format '%s'", format)
	}
}

// WriteFile renders records into path. An existing file is left alone unless
// overwrite is set; the returned bool reports whether the file was written.
func WriteFile(path string, records []book.Record, format Format, overwrite bool) (bool, error) {
	if format == FormatJSON {
		if records == nil {
			records = []book.Record{}
		}
		return fileutil.WriteJSONFile(records, path, overwrite)
	}

	var buf bytes.Buffer
	if err := Render(&buf, records, format); err != nil {
		return false, err
	}

	written, err := fileutil.WriteFileWithOverwrite(path, buf.Bytes(), 0644, overwrite)
	if err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if !written {
		slog.Info("Output file already exists, skipping", "filename", path, "overwrite", overwrite)
	}
	return written, nil
}

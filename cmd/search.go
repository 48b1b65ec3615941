package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/config"
	"github.com/lepinkainen/bookbot/internal/lookup"
	"github.com/lepinkainen/bookbot/internal/output"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query      []string `arg:"" help:"Search terms"`
	MaxResults int      `short:"n" help:"Maximum number of results" default:"10"`
	PrintType  string   `help:"Restrict results to all, books or magazines" default:"all" enum:"all,books,magazines"`
	Format     string   `short:"F" help:"Output format: text, json, yaml or markdown" default:"text"`
	Strict     bool     `help:"Fail on fetch or parse errors instead of printing an empty result"`
	Output     string   `short:"o" help:"Write results to this file instead of stdout"`
	Overwrite  bool     `help:"Overwrite the output file if it exists"`
}

// PingCmd represents the ping command
type PingCmd struct{}

func (s *SearchCmd) Run() error {
	printType, err := book.ParsePrintType(s.PrintType)
	if err != nil {
		return err
	}

	req, err := book.NewSearchRequest(strings.Join(s.Query, " "), s.MaxResults, printType)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(s.Format)
	if err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}

	client, err := newClient(settings)
	if err != nil {
		return err
	}

	store := openStore(settings)
	defer closeStore(store)

	// Strict mode reports failures, so caching them would only hide the next one
	svc := lookup.NewService(client, store, lookup.WithCacheFailures(settings.CacheFailures && !s.Strict))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var records []book.Record
	if s.Strict {
		result := svc.Lookup(ctx, req)
		if !result.OK() {
			return fmt.Errorf("lookup failed for %q: %w", req.Query, result.Err)
		}
		slog.Debug("Lookup complete", "key", req.Key(), "records", len(result.Records), "cached", result.FromCache)
		records = result.Records
	} else {
		records = svc.GetOrFetch(ctx, req)
	}

	return emit(records, format, s.Output, s.Overwrite)
}

func (p *PingCmd) Run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	client, err := newClient(settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("google books API is not reachable: %w", err)
	}

	_, err = fmt.Fprintf(stdout, "Google Books API is reachable at %s\n", settings.BaseURL)
	return err
}

func emit(records []book.Record, format output.Format, path string, overwrite bool) error {
	if path == "" {
		return output.Render(stdout, records, format)
	}

	written, err := output.WriteFile(path, records, format, overwrite)
	if err != nil {
		return err
	}
	if written {
		slog.Info("Wrote results", "filename", path, "records", len(records), "format", format)
	}
	return nil
}

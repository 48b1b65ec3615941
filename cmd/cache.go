package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/bookbot/internal/book"
	"github.com/lepinkainen/bookbot/internal/config"
	"github.com/lepinkainen/bookbot/internal/output"
)

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	List  CacheListCmd  `cmd:"" help:"List cached keys"`
	Show  CacheShowCmd  `cmd:"" help:"Print the cached records for a search without touching the network"`
	Clear CacheClearCmd `cmd:"" help:"Remove cached entries"`
}

// CacheListCmd represents the cache list command
type CacheListCmd struct{}

// CacheShowCmd represents the cache show command
type CacheShowCmd struct {
	Query      []string `arg:"" help:"Search terms"`
	MaxResults int      `short:"n" help:"Maximum number of results" default:"10"`
	PrintType  string   `help:"Restrict results to all, books or magazines" default:"all" enum:"all,books,magazines"`
	Format     string   `short:"F" help:"Output format: text, json, yaml or markdown" default:"text"`
}

// CacheClearCmd represents the cache clear command
type CacheClearCmd struct {
	Key []string `short:"k" help:"Remove only these cache keys (default: everything)"`
}

func (c *CacheListCmd) Run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	store := openStore(settings)
	defer closeStore(store)

	keys := store.Keys()
	if len(keys) == 0 {
		_, err := fmt.Fprintln(stdout, "Cache is empty")
		return err
	}

	for _, key := range keys {
		records, _ := store.Get(key)
		if _, err := fmt.Fprintf(stdout, "%s\t%d\n", key, len(records)); err != nil {
			return err
		}
	}
	return nil
}

func (c *CacheShowCmd) Run() error {
	printType, err := book.ParsePrintType(c.PrintType)
	if err != nil {
		return err
	}

	req, err := book.NewSearchRequest(strings.Join(c.Query, " "), c.MaxResults, printType)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}

	store := openStore(settings)
	defer closeStore(store)

	records, ok := store.Get(req.Key())
	if !ok {
		_, err := fmt.Fprintf(stdout, "No cached entry for %q\n", req.Key())
		return err
	}
	return output.Render(stdout, records, format)
}

func (c *CacheClearCmd) Run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	store := openStore(settings)
	defer closeStore(store)

	if len(c.Key) == 0 {
		removed, err := store.Clear()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "Removed %d cache entries\n", removed)
		return err
	}

	removed := 0
	for _, key := range c.Key {
		existed, err := store.Invalidate(book.CacheKey(key))
		if err != nil {
			return err
		}
		if existed {
			removed++
		}
	}
	_, err = fmt.Fprintf(stdout, "Removed %d cache entries\n", removed)
	return err
}

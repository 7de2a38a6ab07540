package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/clix/pkg/format"
	"github.com/getmockd/clix/pkg/logging"
	"github.com/getmockd/clix/pkg/source"
)

// Result is a loaded configuration.
type Result struct {
	// Location is the absolute path or URL that was read, empty when no
	// configuration was loaded.
	Location string
	// Format is the adapter name, e.g. "TOML".
	Format   string
	Document format.Document
}

// Loaded reports whether a configuration file was read.
func (r *Result) Loaded() bool { return r.Location != "" }

// Loader reads and parses configuration files.
type Loader struct {
	// Registry selects adapters by extension. Defaults to format.Builtin().
	Registry *format.Registry
	Locator  *source.Locator
	Logger   *slog.Logger

	// Notices receives "Load configuration at ..." when an explicit
	// configuration is requested. Nil disables the notice.
	Notices io.Writer
}

// Load locates, reads and parses the configuration designated by pattern.
// required is set when the pattern was given explicitly by the user; an
// unmatched required pattern is a *source.ConfigNotFoundError.
func (l *Loader) Load(ctx context.Context, pattern string, required bool) (*Result, error) {
	log := logging.OrNop(l.Logger)
	empty := &Result{Document: format.Document{}}

	if pattern == "" {
		log.Debug("No configuration pattern.")
		log.Debug("Ignore configuration file.")
		return empty, nil
	}

	l.announce(log, pattern, required)

	locator := l.Locator
	if locator == nil {
		locator = &source.Locator{Logger: l.Logger}
	}
	candidate, err := locator.Locate(ctx, pattern, required)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		log.Debug("Configuration not found at " + pattern)
		log.Debug("Ignore configuration file.")
		log.Debug("Loaded configuration: {}")
		return empty, nil
	}

	registry := l.Registry
	if registry == nil {
		registry = format.Builtin()
	}
	adapter, err := registry.Lookup(candidate.Ext())
	if err != nil {
		var uerr *format.UnsupportedFormatError
		if errors.As(err, &uerr) {
			uerr.Location = candidate.Location
		}
		return nil, err
	}

	data, err := locator.Read(ctx, candidate)
	if err != nil {
		return nil, err
	}

	doc, err := adapter.Parse(data)
	if err != nil {
		var perr *format.ParseError
		if errors.As(err, &perr) {
			perr.Location = candidate.Location
		}
		return nil, err
	}

	log.Debug("Loaded configuration: "+oj.JSON(map[string]any(doc), &ojg.Options{Sort: true}),
		"format", adapter.Name())
	return &Result{Location: candidate.Location, Format: adapter.Name(), Document: doc}, nil
}

func (l *Loader) announce(log *slog.Logger, pattern string, required bool) {
	if !required {
		log.Debug("Load configuration matching " + pattern)
		return
	}
	location := pattern
	if !source.IsURL(pattern) {
		if abs, err := source.AbsPattern(pattern); err == nil {
			location = abs
		}
	}
	if l.Notices != nil {
		_, _ = fmt.Fprintf(l.Notices, "Load configuration at %s\n", location)
	} else {
		log.Info("Load configuration at " + location)
	}
}

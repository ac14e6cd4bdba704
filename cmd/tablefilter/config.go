// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cdc-filter/tablefilter/internal/options"
	"github.com/cdc-filter/tablefilter/tablefilter"
)

const (
	defaultCandidate = `$.schema + "." + $.table`
	defaultFormat    = formatText
)

// inputFormat specifies how input records are read.
type inputFormat string

const (
	// formatText treats every line as a candidate.
	formatText = inputFormat("text")
	// formatJSON treats every line as a JSON event.
	formatJSON = inputFormat("json")
)

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *inputFormat) UnmarshalText(text []byte) error {
	switch x := inputFormat(text); x {
	case formatText, formatJSON:
		*f = x
	default:
		return fmt.Errorf(`invalid value %q (expected "text" or "json")`, x)
	}
	return nil
}

// UnmarshalFlag implements [flags.Unmarshaler].
func (f *inputFormat) UnmarshalFlag(value string) error {
	var x inputFormat
	if err := x.UnmarshalText([]byte(value)); err != nil {
		return err
	}
	*f = x
	return nil
}

type config struct {
	Pattern       string                         `short:"p" long:"pattern" description:"Comma separated list of regular expressions" value-name:"PATTERNS" toml:"pattern"`
	DenyEmpty     bool                           `long:"deny-empty" description:"Reject records if there are no patterns or the candidate is empty" toml:"deny_empty"`
	MaxLength     int                            `long:"maxlength" description:"Maximal LENgth of a single pattern group" value-name:"LEN" toml:"maxlength"`
	EmptyPatterns tablefilter.EmptyPatternPolicy `long:"empty-patterns" description:"How to handle empty patterns (preserve, ignore, reject)" value-name:"POLICY" toml:"empty_patterns"`
	Format        inputFormat                    `short:"f" long:"format" description:"FORMAT of the input records (text, json)" value-name:"FORMAT" toml:"format"`
	Candidate     string                         `short:"e" long:"candidate" description:"EXPRession extracting the candidate from JSON records" value-name:"EXPR" toml:"candidate"`
	Invert        bool                           `short:"v" long:"invert" description:"Output the records not passing the filter" toml:"invert"`
	Report        bool                           `long:"report" description:"Write a CSV report of all candidates and verdicts" toml:"report"`
	Rate          *float64                       `short:"r" long:"rate" description:"The average upper limit of records per second (defaults to unlimited)" toml:"rate"`
	LogLevel      *options.LogLevel              `long:"log-level" description:"LEVEL of logging details (debug, info, warn, error)" value-name:"LEVEL" toml:"log_level"`
	Version       bool                           `long:"version" description:"Display version of the binary" toml:"-"`

	Config string `short:"c" long:"config" description:"Path to config TOML file" value-name:"TOML-FILE" toml:"-"`

	filter *tablefilter.RegexFilter
	logger *slog.Logger
}

// configPaths are the potential file locations of the config file.
var configPaths = []string{
	"~/.config/tablefilter/tablefilter.toml",
	"~/.tablefilter.toml",
	"tablefilter.toml",
}

// setDefaults pre-inits a configuration.
func setDefaults(cfg *config) {
	cfg.MaxLength = tablefilter.DefaultMaxLength
	cfg.EmptyPatterns = tablefilter.EmptyPatternPreserve
	cfg.Format = defaultFormat
	cfg.Candidate = defaultCandidate
}

// ensureDefaults re-establishes default values if not set.
func ensureDefaults(cfg *config) {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = tablefilter.DefaultMaxLength
	}
	if cfg.EmptyPatterns == "" {
		cfg.EmptyPatterns = tablefilter.EmptyPatternPreserve
	}
	if cfg.Format == "" {
		cfg.Format = defaultFormat
	}
	if cfg.Candidate == "" {
		cfg.Candidate = defaultCandidate
	}
	if cfg.LogLevel == nil {
		cfg.LogLevel = &options.LogLevel{Level: slog.LevelInfo}
	}
}

// parseArgsConfig parses the command line and if need a config file.
func parseArgsConfig(args []string) ([]string, *config, error) {
	p := options.Parser[config]{
		DefaultConfigLocations: configPaths,
		ConfigLocation:         func(cfg *config) string { return cfg.Config },
		Usage:                  "[OPTIONS] files...",
		HasVersion:             func(cfg *config) bool { return cfg.Version },
		SetDefaults:            setDefaults,
		EnsureDefaults:         ensureDefaults,
	}
	return p.ParseArgs(args)
}

// prepareLogging installs the logger for the configured level.
func (cfg *config) prepareLogging() {
	cfg.logger = cfg.LogLevel.NewLogger(os.Stderr)
	slog.SetDefault(cfg.logger)
}

// prepareFilter builds the filter from the configured patterns.
func (cfg *config) prepareFilter() error {
	f, err := tablefilter.NewWithOptions(cfg.Pattern, tablefilter.Options{
		DefaultEmptyValue: !cfg.DenyEmpty,
		MaxLength:         cfg.MaxLength,
		EmptyPatterns:     cfg.EmptyPatterns,
		Logger:            cfg.logger,
	})
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	cfg.filter = f
	return nil
}

// prepare prepares internal state of a loaded configuration.
func (cfg *config) prepare() error {
	cfg.prepareLogging()
	return cfg.prepareFilter()
}

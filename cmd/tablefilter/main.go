// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package main implements the tablefilter tool.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cdc-filter/tablefilter/internal/options"
)

func run(cfg *config, files []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg.logger.Debug("Filter prepared", "patterns", cfg.filter.String())

	p := newProcessor(cfg, os.Stdout)
	defer p.stats.log(cfg.logger)
	return p.run(ctx, files)
}

func main() {
	files, cfg, err := parseArgsConfig(os.Args[1:])
	options.ErrorCheck(err)
	options.ErrorCheck(cfg.prepare())
	options.ErrorCheck(run(cfg, files))
}

// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/time/rate"

	"github.com/cdc-filter/tablefilter/tablefilter"
	"github.com/cdc-filter/tablefilter/util"
)

// maxRecordSize is the longest input line accepted.
const maxRecordSize = 4 * 1024 * 1024

type processor struct {
	cfg     *config
	filter  tablefilter.EventFilter[string]
	eval    *util.PathEval
	limiter *rate.Limiter
	out     io.Writer
	report  *reportWriter
	stats   stats
}

func newProcessor(cfg *config, out io.Writer) *processor {
	p := &processor{
		cfg:    cfg,
		filter: cfg.filter,
		eval:   util.NewPathEval(),
		out:    out,
	}
	if cfg.Rate != nil {
		p.limiter = rate.NewLimiter(rate.Limit(*cfg.Rate), 1)
	}
	if cfg.Report {
		p.report = newReportWriter(out)
	}
	return p
}

func (p *processor) log() *slog.Logger {
	if p.cfg.logger != nil {
		return p.cfg.logger
	}
	return slog.Default()
}

// run processes the given files or stdin if there are none.
func (p *processor) run(ctx context.Context, files []string) error {
	if p.report != nil {
		if err := p.report.writeHeader(); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		if err := p.process(ctx, "<stdin>", os.Stdin); err != nil {
			return err
		}
	}
	for _, file := range files {
		if err := p.processFile(ctx, file); err != nil {
			return err
		}
	}
	if p.report != nil {
		return p.report.flush()
	}
	return nil
}

func (p *processor) processFile(ctx context.Context, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.process(ctx, file, f)
}

// process filters the records read from r.
func (p *processor) process(ctx context.Context, name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := strings.TrimSuffix(scanner.Text(), "\r")

		candidate, err := p.candidate(record)
		if err != nil {
			p.stats.failed++
			p.log().Warn("Cannot extract candidate",
				"file", name, "line", lineNo, "err", err)
			continue
		}

		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		pass, err := p.filter.Filter(candidate)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		p.stats.count(pass)
		p.log().Debug("Filtered candidate",
			"candidate", candidate, "pass", pass)

		if err := p.emit(record, candidate, pass); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s failed: %w", name, err)
	}
	return nil
}

// candidate derives the candidate from a record.
func (p *processor) candidate(record string) (string, error) {
	if p.cfg.Format != formatJSON {
		return record, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(record), &doc); err != nil {
		return "", err
	}
	return p.eval.EvalString(p.cfg.Candidate, doc)
}

// emit writes the record or the report line.
func (p *processor) emit(record, candidate string, pass bool) error {
	if p.report != nil {
		return p.report.write(candidate, pass)
	}
	if pass == p.cfg.Invert {
		return nil
	}
	_, err := fmt.Fprintln(p.out, record)
	return err
}

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
	"io"
	"strconv"
	"strings"
)

// reportWriter writes candidates and their verdicts as CSV.
// Every field is put in double quotes (").
type reportWriter struct {
	w *bufio.Writer
}

func newReportWriter(w io.Writer) *reportWriter {
	return &reportWriter{w: bufio.NewWriter(w)}
}

func (rw *reportWriter) writeHeader() error {
	return rw.writeRecord("candidate", "pass")
}

func (rw *reportWriter) write(candidate string, pass bool) error {
	return rw.writeRecord(candidate, strconv.FormatBool(pass))
}

func (rw *reportWriter) writeRecord(fields ...string) error {
	for i, field := range fields {
		if i > 0 {
			rw.w.WriteByte(',')
		}
		rw.w.WriteByte('"')
		field = strings.ReplaceAll(field, "\r\n", "\n")
		rw.w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		rw.w.WriteByte('"')
	}
	return rw.w.WriteByte('\n')
}

// flush writes any buffered data to the underlying writer.
func (rw *reportWriter) flush() error {
	return rw.w.Flush()
}

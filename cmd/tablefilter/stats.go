// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package main

import "log/slog"

// stats contains counters of the filtered records.
type stats struct {
	passed   int
	rejected int
	failed   int
}

// count counts a verdict.
func (st *stats) count(pass bool) {
	if pass {
		st.passed++
	} else {
		st.rejected++
	}
}

func (st *stats) total() int {
	return st.passed + st.rejected + st.failed
}

// log logs the collected stats.
func (st *stats) log(logger *slog.Logger) {
	logger.Info("Filter statistics",
		"records", st.total(),
		"passed", st.passed,
		"rejected", st.rejected,
		"failed", st.failed)
}

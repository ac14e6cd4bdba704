// This file is Free Software under the Apache-2.0 License
// without warranty, see README.md and LICENSES/Apache-2.0.txt for details.
//
// SPDX-License-Identifier: Apache-2.0
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package tablefilter decides if qualified table or topic names
// like "schema.table" match a comma separated list of regular expressions.
//
// The patterns are ordered by descending length, anchored with ^ and $
// and joined into alternation groups whose length is bounded by
// [Options.MaxLength]. Candidates are lowercased before matching.
//
//	f, err := tablefilter.New(`shop\..*,audit.log`)
//	if err != nil {
//		return err
//	}
//	pass, err := f.Filter("shop.orders")
package tablefilter

// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package util contains helpers shared by the tools.
package util

// SemVersion the version in semver.org format, MUST be overwritten during
// the linking stage of the build.
var SemVersion = "0.0.0"

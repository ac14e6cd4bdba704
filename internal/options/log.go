// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package options

import (
	"io"
	"log/slog"
	"strings"
)

// LogLevel implements a helper type to be used in configurations.
type LogLevel struct{ slog.Level }

// MarshalFlag implements [flags.Marshaler].
func (ll LogLevel) MarshalFlag() (string, error) {
	t, err := ll.MarshalText()
	return strings.ToLower(string(t)), err
}

// UnmarshalFlag implements [flags.Unmarshaler].
func (ll *LogLevel) UnmarshalFlag(value string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(value)); err != nil {
		return err
	}
	*ll = LogLevel{Level: l}
	return nil
}

// NewLogger returns a text logger writing to w at the level of ll.
func (ll LogLevel) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ll.Level,
	}))
}

// Copyright (C) 2026 The Arrex Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package diag provides the low-volume, caller-invisible logging used
// by the registry and buffer packages to report events that are not
// errors (a key being replaced, a no-op compaction) but are still
// useful when tracking down surprising behavior.
package diag

import (
	"log"
	"os"
	"sync/atomic"
)

var logger = log.New(os.Stderr, "arrex: ", log.Lshortfile)

var verbose atomic.Bool

// SetVerbose toggles whether Printf emits anything. Diagnostics are
// silent by default; there is no environment variable to flip this,
// since arrex has no notion of process configuration.
func SetVerbose(v bool) {
	verbose.Store(v)
}

// Printf logs a diagnostic line when verbose mode is enabled.
func Printf(format string, args ...any) {
	if verbose.Load() {
		logger.Printf(format, args...)
	}
}

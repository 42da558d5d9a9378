// SPDX-License-Identifier: EPL-2.0

package scansynth

import (
	"log/slog"

	"github.com/ik5/scansynth/internal/logging"
)

// SetLogger routes the logs of every package to l. nil silences them.
func SetLogger(l *slog.Logger) { logging.Set(l) }

// Logger returns the logger in use.
func Logger() *slog.Logger { return logging.L() }

// Package duallog wires the process's two output streams:
// - Structured diagnostics go to STDERR
// - Bare result values (IP addresses, statuses) go to STDOUT
// so the tool stays usable in pipelines.
package duallog

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Setup configures the global logger to write diagnostics to STDERR at the
// given level. STDOUT stays reserved for result values.
func Setup(level zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(level)
}

// Result prints a result line to STDOUT.
func Result(format string, v ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", v...)
}

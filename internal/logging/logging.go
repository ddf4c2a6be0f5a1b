// Package logging is a thin wrapper around logrus, configured the way
// the corpus's service repositories do it (grounded on
// r3e-network-service_layer's infrastructure/logging package): a leveled,
// structured logger with a JSON or text formatter and a single New
// constructor.
//
// The core packages (jadecrypto, keyfile, keystore, mnemonic, bip32,
// txsigner, service) never import this package and never log — secret
// material has no business anywhere near a log line. Only the RPC
// adapter and the CLI's server command log, and only public identifiers:
// method name, chain, address, and outcome (spec.md §7).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps *logrus.Logger. Embedding keeps every logrus.Entry/Logger
// method (WithField, Info, Error, ...) available on the wrapped value.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger at the given level ("debug", "info", "warn",
// "error", "trace"; default "info" on empty or unrecognized input) and
// format ("json" or "text", default "text"), writing to stdout.
func New(level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Logger{Logger: l}
}

// LevelForVerbosity maps the CLI's repeated -v flag count to a logrus
// level name: 0 verbosity is "info", 1 is "debug", 2+ is "trace"
// (spec.md §10.1's -v/-vv stepping).
func LevelForVerbosity(count int) string {
	switch {
	case count >= 2:
		return "trace"
	case count == 1:
		return "debug"
	default:
		return "info"
	}
}

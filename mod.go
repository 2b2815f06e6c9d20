// Package duet defines the global logger and the prometheus collectors of the
// module.
//
// The logger is disabled by default and the level can be modified with the
// environment variable DUET_LOG:
//
//	DUET_LOG=trace go test ./...
package duet

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "DUET_LOG"

const defaultLevel = zerolog.Disabled

func init() {
	switch os.Getenv(EnvLogLevel) {
	case "error":
		Logger = Logger.Level(zerolog.ErrorLevel)
	case "warn":
		Logger = Logger.Level(zerolog.WarnLevel)
	case "info":
		Logger = Logger.Level(zerolog.InfoLevel)
	case "debug":
		Logger = Logger.Level(zerolog.DebugLevel)
	case "trace":
		Logger = Logger.Level(zerolog.TraceLevel)
	case "":
		Logger = Logger.Level(defaultLevel)
	}
}

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance. It is disabled by default
// and the level can be changed through the DUET_LOG environment variable.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(defaultLevel)

// PromCollectors exposes the prometheus collectors created in the module. The
// host is expected to register them, as the module makes no assumption about
// the registry in use.
var PromCollectors []prometheus.Collector

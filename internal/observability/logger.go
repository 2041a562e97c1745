package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/davrosz/actionhttp/internal/logging"
)

// InitLogger builds the process logger for a binary and installs it as the
// global logger. ACTIONHTTP_LOG_LEVEL overrides the global level.
func InitLogger(app string) zerolog.Logger {
	if lvl, ok := logging.LevelFromEnv(); ok {
		zerolog.SetGlobalLevel(lvl)
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

package pivot

import (
	"io"

	"github.com/rs/zerolog"
)

const SOURCE_LOG_FIELD_NAME = "src"

func NewLogger(w io.Writer, cfg Config) zerolog.Logger {
	return zerolog.New(w).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Str(SOURCE_LOG_FIELD_NAME, "analyzer").
		Logger()
}

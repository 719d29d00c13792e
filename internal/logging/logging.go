package logging

import (
	"io"
	"os"
	"strings"

	"house-edge/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var sink io.Writer = os.Stdout

func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var output io.Writer = os.Stdout
	if cfg.File != "" {
		if w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB); err == nil {
			output = w
		} else {
			log.Error().Err(err).Str("path", cfg.File).Msg("open log file failed, falling back to stdout")
		}
	}
	sink = output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer is the sink shared with the HTTP request logger so app and access
// logs land in the same place.
func Writer() io.Writer {
	return sink
}

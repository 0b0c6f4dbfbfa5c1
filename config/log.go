package config

import (
	"io"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
)

// NewLogger builds the process logger described by log_level and log_format.
func (c *Config) NewLogger(w io.Writer) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.LevelOption(lvl)}
	if c.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...), nil
}

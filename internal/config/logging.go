package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger builds a process logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error, fatal) and defaults to info.
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	value := GetEnv("LOG_LEVEL", "info")
	level, err := log.ParseLevel(value)
	if err != nil {
		return nil, &EnvError{Key: "LOG_LEVEL", Value: value, Err: err}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

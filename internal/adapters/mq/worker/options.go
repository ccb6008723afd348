package worker

import (
	"github.com/pitchside/oracle/pkg/logger"
)

// Option applies a configuration option to the LogWorker.
type Option func(*LogWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *LogWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *LogWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

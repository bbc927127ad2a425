// Package logging configures the global logrus logger for the lnbot CLI.
// Import it with the blank identifier; configuration happens at init time
// from environment variables.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// init sets the level and formatter from LOG_LEVEL / LOG_FORMAT and installs
// a hook that copies the active trace context into every entry.
func init() {
	log.AddHook(&traceContextHook{})

	level, err := log.ParseLevel(levelFromEnv())
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)
	log.SetFormatter(formatterFromEnv())

	if level == log.DebugLevel {
		log.SetReportCaller(true)
	}
}

func levelFromEnv() string {
	if level, ok := os.LookupEnv("LOG_LEVEL"); ok {
		return level
	}

	return "info"
}

// formatterFromEnv returns a JSON formatter when LOG_FORMAT=json, text
// otherwise.
func formatterFromEnv() log.Formatter {
	if os.Getenv("LOG_FORMAT") == "json" {
		return &log.JSONFormatter{}
	}

	return &log.TextFormatter{}
}

// traceContextHook adds trace_id and span_id fields to entries logged with a
// context that carries an active span, so CLI logs line up with the caller's
// traces.
type traceContextHook struct{}

func (h *traceContextHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *traceContextHook) Fire(entry *log.Entry) error {
	if entry.Context == nil {
		return nil
	}

	span := trace.SpanFromContext(entry.Context).SpanContext()
	if span.IsValid() {
		entry.Data["trace_id"] = span.TraceID().String()
		entry.Data["span_id"] = span.SpanID().String()
	}

	return nil
}

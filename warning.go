// FILE: lixenwraith/settings/warning.go
package settings

import (
	"github.com/rs/zerolog"
)

// Warning messages recorded by the loader.
const (
	MsgFileUnreadable     = "config file does not exist or is not readable"
	MsgFileIgnored        = "ignoring config file"
	MsgFileLoading        = "loading config file"
	MsgFileInvalid        = "config file must be valid"
	MsgFileChanges        = "config file applied changes"
	MsgDirectoryLoading   = "loading config files from directory"
	MsgCategoryNotMapping = "category must be a mapping"
	MsgEnvRabbitMQ        = "using rabbitmq url environment variable"
	MsgEnvRedis           = "using redis url environment variable"
	MsgEnvAPIPort         = "using api port environment variable"
)

// Warning is one audit record: a value under suspicion and what happened to it.
type Warning struct {
	Subject any    `json:"subject"`
	Message string `json:"message"`
}

// warningLog is an append-only list of warnings mirrored to a logger.
type warningLog struct {
	records []Warning
	logger  zerolog.Logger
	metrics *Metrics
}

// add appends a warning and returns it.
func (w *warningLog) add(subject any, message string) Warning {
	record := Warning{Subject: subject, Message: message}
	w.records = append(w.records, record)

	w.logger.Warn().Interface("subject", subject).Msg(message)
	if w.metrics != nil {
		w.metrics.warnings.Inc()
	}
	return record
}

// snapshot returns a copy of the records.
func (w *warningLog) snapshot() []Warning {
	out := make([]Warning, len(w.records))
	copy(out, w.records)
	return out
}

// since returns the records appended after the first n.
func (w *warningLog) since(n int) []Warning {
	if n >= len(w.records) {
		return nil
	}
	out := make([]Warning, len(w.records)-n)
	copy(out, w.records[n:])
	return out
}

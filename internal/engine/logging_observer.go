package engine

import "log/slog"

// LoggingObserver writes every event as a structured debug record
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer; a nil logger means slog.Default()
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	lo.logger.Debug("engine_lifecycle",
		"event", event.Type,
		"op_id", event.OpID,
		"table", event.Table,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}

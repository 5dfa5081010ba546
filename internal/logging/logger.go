// Package logging provides a logging abstraction layer that decouples the application
// from specific logging frameworks. Components receive a Logger through their
// constructors; nothing in the application logs through a package-level global.
package logging

// Logger is the structured logger handed to every component. The With*
// methods return a derived logger and leave the receiver unchanged.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger

	// Fatal and Fatalf exit the process after logging.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// GetLogger returns a fresh info-level text logger. Constructors use it when
// they are handed a nil Logger.
func GetLogger() Logger {
	return NewLogrusAdapter("info", "text")
}

// OrDefault returns logger, or GetLogger() when logger is nil.
func OrDefault(logger Logger) Logger {
	if logger == nil {
		return GetLogger()
	}
	return logger
}

package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lni/dragonboat/v4/logger"
)

// LoggerNames lists every package logger used by sKV
var LoggerNames = []string{"store", "transport/rpc", "rpc", "client"}

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// sKVLogger implements the ILogger interface with custom formatting.
// Warnings and errors are written to errLogger, everything else to outLogger.
type sKVLogger struct {
	name      string
	level     logger.LogLevel
	outLogger *log.Logger
	errLogger *log.Logger
}

func (l *sKVLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *sKVLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log(l.outLogger, "DEBUG", format, args...)
	}
}

func (l *sKVLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log(l.outLogger, "INFO", format, args...)
	}
}

func (l *sKVLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log(l.errLogger, "WARN", format, args...)
	}
}

func (l *sKVLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log(l.errLogger, "ERROR", format, args...)
	}
}

func (l *sKVLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *sKVLogger) log(target *log.Logger, levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	target.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// NewLoggerFactory returns a logger.Factory writing to the given streams
func NewLoggerFactory(out, errOut io.Writer) logger.Factory {
	return func(pkgName string) logger.ILogger {
		return &sKVLogger{
			name:      pkgName,
			level:     logger.INFO,
			outLogger: log.New(out, "", log.Ldate|log.Ltime),
			errLogger: log.New(errOut, "", log.Ldate|log.Ltime),
		}
	}
}

// CreateLogger implements the Factory interface using stdout and stderr
func CreateLogger(pkgName string) logger.ILogger {
	return NewLoggerFactory(os.Stdout, os.Stderr)(pkgName)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the custom logger factory and sets the level of all sKV loggers
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory
	logger.SetLoggerFactory(CreateLogger)

	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}

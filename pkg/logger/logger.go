package logger

import (
	"fmt"
	"log"
	"os"
)

var std = log.New(os.Stdout, "", log.LstdFlags)

// Init configures the bootstrap logger used before the structured
// logger is ready (config loading, DB connection attempts).
func Init() {
	std.SetFlags(log.LstdFlags | log.Lmsgprefix)
}

// Info logs a printf-style message to stdout
func Info(format string, args ...interface{}) {
	std.Output(2, fmt.Sprintf("INFO "+format, args...)) //nolint:errcheck
}

// Error logs a printf-style error message to stdout
func Error(format string, args ...interface{}) {
	std.Output(2, fmt.Sprintf("ERROR "+format, args...)) //nolint:errcheck
}

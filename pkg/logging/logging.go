// Package logging configures zerolog for punkt.
//
// Console output goes to stderr at the level picked by -v. A JSON log file
// under the XDG state directory records every debug event regardless of -v,
// so a failed sync can be inspected after the fact.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component names a subsystem in the "component" field of every event
type Component string

const (
	ComponentCore        Component = "core"
	ComponentConfig      Component = "config"
	ComponentIgnore      Component = "ignore"
	ComponentTree        Component = "tree"
	ComponentTracker     Component = "tracker"
	ComponentStore       Component = "tracker.store"
	ComponentTransaction Component = "transaction"
)

// LogFileEnv overrides the log file location
const LogFileEnv = "PUNKT_LOG_FILE"

// FileLevel is the minimum level written to the log file
const FileLevel = zerolog.DebugLevel

// Options configure Setup
type Options struct {
	Verbosity int
	// Console receives human readable output; nil means os.Stderr
	Console io.Writer
	NoColor bool
	// LogFile overrides LogFilePath; "-" disables the file
	LogFile string
}

var (
	mu      sync.Mutex
	logFile *os.File
)

// SetupLogger configures the global logger for the CLI
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, NoColor: os.Getenv("NO_COLOR") != ""})
}

// Setup replaces the global logger. A log file left open by an earlier call
// is closed first. Failing to open the file is logged and otherwise ignored.
func Setup(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleLevel := ConsoleLevel(opts.Verbosity)
	writers := []io.Writer{levelFilter{
		w:     zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen, NoColor: opts.NoColor},
		level: consoleLevel,
	}}

	path := opts.LogFile
	if path == "" {
		path = LogFilePath()
	}
	var fileErr error
	if path != "-" {
		logFile, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, levelFilter{w: logFile, level: FileLevel})
		}
	}

	global := consoleLevel
	if logFile != nil && FileLevel < global {
		global = FileLevel
	}
	zerolog.SetGlobalLevel(global)

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().
		Int("verbosity", opts.Verbosity).
		Str("consoleLevel", consoleLevel.String()).
		Str("logFile", path).
		Msg("Logger initialized")
}

// ConsoleLevel maps a -v count to the console level
func ConsoleLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// LogFilePath returns $PUNKT_LOG_FILE, or punkt/punkt.log under the XDG
// state directory.
func LogFilePath() string {
	if override := os.Getenv(LogFileEnv); override != "" {
		return override
	}
	return filepath.Join(xdg.StateHome, "punkt", "punkt.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// levelFilter drops events below level before they reach w
type levelFilter struct {
	w     io.Writer
	level zerolog.Level
}

func (f levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.level {
		return len(p), nil
	}
	return f.w.Write(p)
}

// GetLogger returns a logger tagged with component
func GetLogger(component Component) zerolog.Logger {
	return log.With().Str("component", string(component)).Logger()
}

// ForCommand returns the logger for a driving operation, tagged
// "commands.<name>".
func ForCommand(name string) zerolog.Logger {
	return GetLogger(Component("commands." + name))
}

// LogCommand records a CLI invocation
func LogCommand(cmd string, args []string, dryRun bool) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Bool("dryRun", dryRun).
		Msg("Executing command")
}

// SetupTestLogger routes the global logger to w at the given level.
// Tests use it to capture output without touching the log file.
func SetupTestLogger(w io.Writer, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

// PrintfAdapter exposes a zerolog logger through the Errorf/Warningf/
// Infof/Debugf methods storage libraries log through. Info and debug
// output is demoted to trace.
type PrintfAdapter struct {
	Logger zerolog.Logger
}

func (a PrintfAdapter) Errorf(format string, args ...interface{}) {
	a.Logger.Error().Msg(printf(format, args))
}

func (a PrintfAdapter) Warningf(format string, args ...interface{}) {
	a.Logger.Warn().Msg(printf(format, args))
}

func (a PrintfAdapter) Infof(format string, args ...interface{}) {
	a.Logger.Trace().Msg(printf(format, args))
}

func (a PrintfAdapter) Debugf(format string, args ...interface{}) {
	a.Logger.Trace().Msg(printf(format, args))
}

func printf(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

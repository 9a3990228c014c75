package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger closes any log file opened by the test
func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		Setup(Options{Console: io.Discard, LogFile: "-"})
		SetupTestLogger(io.Discard, zerolog.WarnLevel)
	})
}

func TestConsoleLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ConsoleLevel(tt.verbosity))
		})
	}
}

func TestSetupSplitsConsoleAndFile(t *testing.T) {
	resetLogger(t)
	logPath := filepath.Join(t.TempDir(), "state", "punkt.log")
	var console bytes.Buffer

	Setup(Options{Verbosity: 0, Console: &console, NoColor: true, LogFile: logPath})
	assert.Equal(t, FileLevel, zerolog.GlobalLevel(), "file level keeps debug events flowing")

	logger := GetLogger(ComponentTracker)
	logger.Debug().Msg("entry refreshed")
	logger.Warn().Msg("store slow")

	assert.Contains(t, console.String(), "store slow")
	assert.NotContains(t, console.String(), "entry refreshed")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"entry refreshed"`)
	assert.Contains(t, string(data), `"message":"store slow"`)
	assert.Contains(t, string(data), `"component":"tracker"`)
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		logFile   bool
		want      zerolog.Level
	}{
		{"quiet without file", 0, false, zerolog.WarnLevel},
		{"verbose without file", 1, false, zerolog.InfoLevel},
		{"quiet with file", 0, true, zerolog.DebugLevel},
		{"trace with file", 3, true, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger(t)
			logFile := "-"
			if tt.logFile {
				logFile = filepath.Join(t.TempDir(), "punkt.log")
			}

			Setup(Options{Verbosity: tt.verbosity, Console: io.Discard, LogFile: logFile})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestSetupUnwritableFileFallsBackToConsole(t *testing.T) {
	resetLogger(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	var console bytes.Buffer

	Setup(Options{Console: &console, NoColor: true, LogFile: filepath.Join(blocker, "punkt.log")})

	assert.Contains(t, console.String(), "Failed to open log file")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestLogFilePath(t *testing.T) {
	tests := []struct {
		name     string
		xdgState string
		override string
		expected string
	}{
		{
			name:     "xdg state home",
			xdgState: "/custom/state",
			expected: "/custom/state/punkt/punkt.log",
		},
		{
			name:     "explicit override wins",
			xdgState: "/custom/state",
			override: "/tmp/elsewhere.log",
			expected: "/tmp/elsewhere.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_STATE_HOME", tt.xdgState)
			t.Setenv(LogFileEnv, tt.override)
			xdg.Reload()
			t.Cleanup(xdg.Reload)

			assert.Equal(t, tt.expected, filepath.ToSlash(LogFilePath()))
		})
	}
}

func TestComponentLoggers(t *testing.T) {
	var buf bytes.Buffer
	SetupTestLogger(&buf, zerolog.InfoLevel)

	txLogger := GetLogger(ComponentTransaction)
	txLogger.Info().Msg("committed")
	cmdLogger := ForCommand("sync")
	cmdLogger.Info().Msg("synced")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"component":"transaction"`)
	assert.Contains(t, lines[1], `"component":"commands.sync"`)
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	SetupTestLogger(&buf, zerolog.DebugLevel)

	LogCommand("sync", []string{"-r", "~/.bashrc"}, true)

	out := buf.String()
	assert.Contains(t, out, `"command":"sync"`)
	assert.Contains(t, out, "~/.bashrc")
	assert.Contains(t, out, `"dryRun":true`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	SetupTestLogger(&buf, zerolog.DebugLevel)

	done := LogOperationStart(GetLogger(ComponentTree), "expand")
	done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Operation started")
	assert.Contains(t, lines[1], "Operation completed")
	assert.Contains(t, lines[1], "duration")
}

func TestPrintfAdapter(t *testing.T) {
	tests := []struct {
		name      string
		log       func(PrintfAdapter)
		level     zerolog.Level
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "errors stay errors",
			log:       func(a PrintfAdapter) { a.Errorf("compaction failed: %s\n", "disk full") },
			level:     zerolog.InfoLevel,
			wantLevel: "error",
			wantMsg:   "compaction failed: disk full",
		},
		{
			name:      "warnings stay warnings",
			log:       func(a PrintfAdapter) { a.Warningf("value log %d truncated", 3) },
			level:     zerolog.InfoLevel,
			wantLevel: "warn",
			wantMsg:   "value log 3 truncated",
		},
		{
			name:      "info demoted to trace",
			log:       func(a PrintfAdapter) { a.Infof("replaying %d entries", 12) },
			level:     zerolog.TraceLevel,
			wantLevel: "trace",
			wantMsg:   "replaying 12 entries",
		},
		{
			name:  "info hidden at info level",
			log:   func(a PrintfAdapter) { a.Infof("replaying") },
			level: zerolog.InfoLevel,
		},
		{
			name:  "debug hidden at debug level",
			log:   func(a PrintfAdapter) { a.Debugf("gc tick") },
			level: zerolog.DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupTestLogger(&buf, tt.level)
			tt.log(PrintfAdapter{Logger: GetLogger(ComponentStore)})

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, buf.String(), `"message":"`+tt.wantMsg+`"`)
			assert.Contains(t, buf.String(), `"component":"tracker.store"`)
		})
	}
}

package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	logFile *os.File
)

// Init initializes the global logger. The terminal owns stdout while the
// editor runs, so logs go to ~/.config/rovi/rovi.log.
func Init(debug bool) error {
	logPath, err := getLogPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return err
	}

	// Truncate on each run.
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		level,
	)

	L = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	S = L.Sugar()

	S.Infow("logger initialized", "path", logPath, "debug", debug)
	return nil
}

// Close flushes and closes the logger.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}

func getLogPath() (string, error) {
	if v := os.Getenv("ROVI_LOG_FILE"); v != "" {
		return v, nil
	}

	if v := os.Getenv("ROVI_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rovi.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rovi", "rovi.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rovi", "rovi.log"), nil
}

// Convenience functions for common logging patterns. They are safe to
// call before Init; messages are dropped until a logger exists.

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}

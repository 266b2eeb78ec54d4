package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process-wide logger.
type Options struct {
	// Path is the log file. Stdout is never used: the stdio transport owns it.
	Path string
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Stderr mirrors every entry to stderr, for the HTTP server.
	Stderr bool
}

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	sugar   = base.Sugar()
	logFile *lumberjack.Logger
)

// Init initializes the logger. It creates parent directories if needed and
// appends to the file, rotating it when it grows large. Calling Init again
// replaces the previous logger.
func Init(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level = parsed
	}

	var sinks []zapcore.WriteSyncer
	var lj *lumberjack.Logger
	if opts.Path != "" {
		if err := ensureParentDir(opts.Path); err != nil {
			return err
		}
		lj = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    20,
			MaxBackups: 3,
			MaxAge:     28,
			LocalTime:  true,
		}
		sinks = append(sinks, zapcore.AddSync(lj))
	}
	if opts.Stderr {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.NewMultiWriteSyncer(sinks...),
		level,
	)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	base, sugar, logFile = l, l.Sugar(), lj
	return nil
}

// Close flushes and closes the underlying log file, if open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	_ = base.Sync()
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// L returns the structured logger. Before Init it discards everything.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.WithOptions(zap.AddCallerSkip(-1))
}

// Debugf logs debug messages.
func Debugf(format string, args ...any) { current().Debugf(format, args...) }

// Infof logs informational messages.
func Infof(format string, args ...any) { current().Infof(format, args...) }

// Warnf logs warnings.
func Warnf(format string, args ...any) { current().Warnf(format, args...) }

// Errorf logs errors.
func Errorf(format string, args ...any) { current().Errorf(format, args...) }

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

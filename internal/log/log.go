package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLog builds the console logger for one binary, named after it. At debug level the
// logger switches to development mode: colored levels, caller locations and stack traces
// from warn upward.
func InitLog(name string, lvl zap.AtomicLevel) *zap.Logger {
	debug := lvl.Level() <= zapcore.DebugLevel

	encodeLevel := zapcore.LowercaseLevelEncoder
	stacktraceLevel := zapcore.DPanicLevel
	if debug {
		encodeLevel = zapcore.LowercaseColorLevelEncoder
		stacktraceLevel = zapcore.WarnLevel
	}

	loggerCfg := &zap.Config{
		Level:         lvl,
		Development:   debug,
		DisableCaller: !debug,
		Encoding:      "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "severity",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeLevel:    encodeLevel,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		// stdout carries CLI output
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := loggerCfg.Build(zap.AddStacktrace(stacktraceLevel))
	if err != nil {
		panic(err)
	}

	return logger.Named(name)
}

// ParseLevel turns a config value such as "debug" into an atomic level, defaulting to info
func ParseLevel(s string) zap.AtomicLevel {
	lvl, err := zap.ParseAtomicLevel(s)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return lvl
}

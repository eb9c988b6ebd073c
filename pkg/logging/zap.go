package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements the Logger interface using uber-go/zap
type ZapLogger struct {
	logger *zap.Logger
	atom   zap.AtomicLevel
	fields []Field
}

// NewZapLogger creates a new Logger implementation backed by zap
func NewZapLogger(options ...ZapOption) Logger {
	opts := defaultZapOptions()
	for _, opt := range options {
		opt(opts)
	}

	config := zap.NewProductionConfig()
	if opts.development {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = opts.outputPaths

	atom := zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if opts.level != nil {
		atom = zap.NewAtomicLevelAt(*opts.level)
	}
	config.Level = atom

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		// Fall back to the plain JSON logger if zap cannot be built
		return NewLogger()
	}

	return &ZapLogger{
		logger: logger,
		atom:   atom,
	}
}

// ZapOption defines a function that can configure a zap logger
type ZapOption func(*zapOptions)

// zapOptions holds configuration for the zap logger
type zapOptions struct {
	development bool
	level       *zapcore.Level
	outputPaths []string
}

// defaultZapOptions returns default options for zap logger
func defaultZapOptions() *zapOptions {
	return &zapOptions{
		development: false,
		outputPaths: []string{"stdout"},
	}
}

// WithDevelopmentMode enables development mode with more verbose logging
func WithDevelopmentMode() ZapOption {
	return func(opts *zapOptions) {
		opts.development = true
	}
}

// WithLogLevel sets a specific minimum log level
func WithLogLevel(level Level) ZapOption {
	return func(opts *zapOptions) {
		zapLevel := toZapLevel(level)
		opts.level = &zapLevel
	}
}

// WithOutputPaths sets output paths for the logger
func WithOutputPaths(paths ...string) ZapOption {
	return func(opts *zapOptions) {
		opts.outputPaths = paths
	}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case SILENT:
		// zap has no off switch; fatal+1 gates everything out
		return zapcore.FatalLevel + 1
	default:
		return zapcore.ErrorLevel
	}
}

// Debug implements Logger interface
func (l *ZapLogger) Debug(msg string, fields ...Field) {
	if ce := l.logger.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(l.convertFields(fields...)...)
	}
}

// Info implements Logger interface
func (l *ZapLogger) Info(msg string, fields ...Field) {
	if ce := l.logger.Check(zapcore.InfoLevel, msg); ce != nil {
		ce.Write(l.convertFields(fields...)...)
	}
}

// Warn implements Logger interface
func (l *ZapLogger) Warn(msg string, fields ...Field) {
	if ce := l.logger.Check(zapcore.WarnLevel, msg); ce != nil {
		ce.Write(l.convertFields(fields...)...)
	}
}

// Error implements Logger interface
func (l *ZapLogger) Error(msg string, fields ...Field) {
	if ce := l.logger.Check(zapcore.ErrorLevel, msg); ce != nil {
		ce.Write(l.convertFields(fields...)...)
	}
}

// WithFields implements Logger interface
func (l *ZapLogger) WithFields(fields ...Field) Logger {
	newLogger := *l
	newLogger.fields = make([]Field, len(l.fields)+len(fields))
	copy(newLogger.fields, l.fields)
	copy(newLogger.fields[len(l.fields):], fields)
	return &newLogger
}

// SetLevel implements Logger interface
func (l *ZapLogger) SetLevel(level Level) {
	l.atom.SetLevel(toZapLevel(level))
}

// SetOutput implements Logger interface
func (l *ZapLogger) SetOutput(w io.Writer) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		l.atom,
	)
	l.logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// GetZapLogger returns the underlying zap.Logger
func (l *ZapLogger) GetZapLogger() *zap.Logger {
	return l.logger
}

// convertFields converts our Field type to zap.Field
func (l *ZapLogger) convertFields(fields ...Field) []zap.Field {
	allFields := make([]Field, 0, len(l.fields)+len(fields))
	allFields = append(allFields, l.fields...)
	allFields = append(allFields, fields...)

	zapFields := make([]zap.Field, 0, len(allFields))
	for _, f := range allFields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}

// Close flushes any buffered log entries
func (l *ZapLogger) Close() error {
	return l.logger.Sync()
}

package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures the process-wide logger.
type Options struct {
	Level   string `json:"level"   mapstructure:"level"`
	Format  string `json:"format"  mapstructure:"format"`
	Output  string `json:"output"  mapstructure:"output"`
	Service string `json:"service" mapstructure:"service"`
}

// NewOptions returns the defaults, honouring APP_ENV and ENABLE_JSON_LOGS.
func NewOptions(service string) *Options {
	format := FormatText
	if strings.EqualFold(os.Getenv("ENABLE_JSON_LOGS"), "true") || os.Getenv("APP_ENV") == "production" {
		format = FormatJSON
	}
	return &Options{
		Level:   "info",
		Format:  format,
		Output:  "stdout",
		Service: service,
	}
}

func (o *Options) Validate() []error {
	var errs []error
	if _, err := logrus.ParseLevel(o.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", o.Level))
	}
	if o.Format != FormatText && o.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("invalid log format %q, must be 'text' or 'json'", o.Format))
	}
	return errs
}

var (
	std     = newStd()
	logFile *os.File
)

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&correlationFormatter{inner: &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02T15:04:05Z07:00"}})
	l.AddHook(redactHook{})
	return l
}

// Init applies opts to the process-wide logger.
func Init(opts *Options) error {
	if opts == nil {
		opts = NewOptions("")
	}
	if err := SetLevel(opts.Level); err != nil {
		return err
	}

	out, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	std.SetOutput(out)

	if opts.Format == FormatJSON {
		std.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	}
	if opts.Service != "" {
		std.AddHook(serviceHook{service: opts.Service})
	}
	return nil
}

// InitLog mirrors log output into the file at path in addition to stdout.
func InitLog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	std.SetOutput(io.MultiWriter(os.Stdout, f))
	return nil
}

// FlushLog syncs and closes the log file opened by InitLog, if any.
func FlushLog() {
	if logFile == nil {
		return
	}
	_ = logFile.Sync()
	_ = logFile.Close()
	logFile = nil
	std.SetOutput(os.Stdout)
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		if err := InitLog(output); err != nil {
			return nil, err
		}
		return std.Out, nil
	}
}

// SetLevel changes the level at runtime.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	std.SetLevel(lvl)
	return nil
}

// SetOutput redirects log output; mostly useful in tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Std exposes the underlying logrus logger for libraries that need one.
func Std() *logrus.Logger {
	return std
}

func Debug(format string, args ...any) { std.Debugf(format, args...) }
func Info(format string, args ...any) { std.Infof(format, args...) }
func Warn(format string, args ...any) { std.Warnf(format, args...) }
func Error(format string, args ...any) { std.Errorf(format, args...) }
func Fatal(format string, args ...any) { std.Fatalf(format, args...) }

func CtxDebug(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Debugf(format, args...)
}

func CtxInfo(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Infof(format, args...)
}

func CtxWarn(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Warnf(format, args...)
}

func CtxError(ctx context.Context, format string, args ...any) {
	fromContext(ctx).Errorf(format, args...)
}

// WithFields returns an entry carrying fields; sensitive keys are redacted on output.
func WithFields(fields map[string]any) *logrus.Entry {
	return std.WithFields(logrus.Fields(fields))
}

func fromContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(std)
	if ctx == nil {
		return entry
	}
	if id := CorrelationID(ctx); id != "" {
		entry = entry.WithField(FieldCorrelationID, id)
	}
	return entry.WithContext(ctx)
}

package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// KV adapts the logger to key/value style interfaces such as retryablehttp.LeveledLogger.
type KV struct {
	prefix string
}

func NewKV(prefix string) KV {
	return KV{prefix: prefix}
}

func (l KV) Error(msg string, keysAndValues ...any) { l.entry(keysAndValues).Error(l.prefix + msg) }
func (l KV) Warn(msg string, keysAndValues ...any) { l.entry(keysAndValues).Warn(l.prefix + msg) }
func (l KV) Info(msg string, keysAndValues ...any) { l.entry(keysAndValues).Info(l.prefix + msg) }
func (l KV) Debug(msg string, keysAndValues ...any) { l.entry(keysAndValues).Debug(l.prefix + msg) }

func (l KV) entry(keysAndValues []any) *logrus.Entry {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return std.WithFields(fields)
}

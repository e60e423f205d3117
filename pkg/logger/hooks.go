package logger

import (
	"bytes"
	"strings"

	"github.com/sirupsen/logrus"
)

// Redacted replaces the value of any sensitive key.
const Redacted = "***REDIGIDA***"

var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"key":           {},
	"secret":        {},
	"authorization": {},
	"api_key":       {},
	"access_token":  {},
}

// IsSensitive reports whether a field or map key must never be logged verbatim.
func IsSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// Redact returns a copy of v with sensitive map values replaced, recursing into maps and slices.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if IsSensitive(k) {
				out[k] = Redacted
				continue
			}
			out[k] = Redact(val)
		}
		return out
	case logrus.Fields:
		return logrus.Fields(Redact(map[string]any(t)).(map[string]any))
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			if IsSensitive(k) {
				out[k] = Redacted
				continue
			}
			out[k] = val
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Redact(item)
		}
		return out
	default:
		return v
	}
}

type redactHook struct{}

func (redactHook) Levels() []logrus.Level { return logrus.AllLevels }

func (redactHook) Fire(entry *logrus.Entry) error {
	for k, v := range entry.Data {
		if IsSensitive(k) {
			entry.Data[k] = Redacted
			continue
		}
		entry.Data[k] = Redact(v)
	}
	return nil
}

type serviceHook struct {
	service string
}

func (serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.service
	return nil
}

// correlationFormatter prefixes text lines with "[<correlation id>] ".
type correlationFormatter struct {
	inner logrus.Formatter
}

func (f *correlationFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	id, ok := entry.Data[FieldCorrelationID].(string)
	if !ok || id == "" {
		return f.inner.Format(entry)
	}

	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		if k != FieldCorrelationID {
			data[k] = v
		}
	}
	clone := *entry
	clone.Data = data

	line, err := f.inner.Format(&clone)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("[" + id + "] ")
	buf.Write(line)
	return buf.Bytes(), nil
}

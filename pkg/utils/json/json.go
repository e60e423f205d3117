// Package json is a thin facade over sonic so callers never import encoding/json directly.
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalString(v any) (string, error) {
	return api.MarshalToString(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

func UnmarshalString(data string, v any) error {
	return api.UnmarshalFromString(data, v)
}

func NewDecoder(r io.Reader) sonic.Decoder {
	return api.NewDecoder(r)
}

func NewEncoder(w io.Writer) sonic.Encoder {
	return api.NewEncoder(w)
}

// Valid reports whether data is a valid JSON encoding.
func Valid(data []byte) bool {
	return api.Valid(data)
}

// Package convert converts between CSV, JSON, YAML and JSX, and parses
// User-Agent strings.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Errors returned for malformed converter input.
var (
	ErrEmptyInput = errors.New("input is empty")
	ErrNotArray   = errors.New("input must be a JSON array of objects")
	ErrEmptyArray = errors.New("JSON array is empty")
	ErrNotObject  = errors.New("array element is not an object")
)

// field is one key/value pair of an ordered object.
type field struct {
	Key   string
	Value json.RawMessage
}

// record is a JSON object that remembers key order.
type record []field

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(f.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r record) get(key string) (json.RawMessage, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// set replaces an existing key in place or appends a new one.
func (r *record) set(key string, value json.RawMessage) {
	for i := range *r {
		if (*r)[i].Key == key {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, field{Key: key, Value: value})
}

func (r record) keys() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Key
	}
	return out
}

func stringValue(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// decodeRecords reads a JSON array of objects keeping each object's key order.
func decodeRecords(input string) ([]record, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, ErrNotArray
	}

	var out []record
	for i := 0; dec.More(); i++ {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("%w: element %d", ErrNotObject, i)
		}
		var rec record
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("invalid JSON: %w", err)
			}
			key, _ := keyTok.(string)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("invalid JSON: %w", err)
			}
			rec.set(key, raw)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		out = append(out, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON: trailing data after array")
	}
	if len(out) == 0 {
		return nil, ErrEmptyArray
	}
	return out, nil
}

// marshalIndent renders v with two-space indentation.
func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

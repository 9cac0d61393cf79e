package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is one tool invocation. Other carries the second text for tools
// that compare two inputs. Options hold tool parameters; values arrive as
// strings from the CLI and as JSON scalars from the socket.
type Request struct {
	Tool    string         `json:"tool"`
	Input   string         `json:"input"`
	Other   string         `json:"other,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// Str returns the option as a string, or def when it is unset.
func (r Request) Str(key, def string) string {
	val, ok := r.Options[key]
	if !ok || val == nil {
		return def
	}
	switch v := val.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the option as an integer, or def when it is unset.
func (r Request) Int(key string, def int) (int, error) {
	val, ok := r.Options[key]
	if !ok || val == nil {
		return def, nil
	}
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidOption, key, v)
		}
		return int(v), nil
	case json.Number:
		return parseInt(key, v.String())
	case string:
		return parseInt(key, v)
	}
	return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidOption, key, val)
}

func parseInt(key, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidOption, key, s)
	}
	return n, nil
}

// Bool returns the option as a boolean, or def when it is unset.
func (r Request) Bool(key string, def bool) (bool, error) {
	val, ok := r.Options[key]
	if !ok || val == nil {
		return def, nil
	}
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("%w: %s must be true or false, got %q", ErrInvalidOption, key, v)
		}
		return b, nil
	}
	return false, fmt.Errorf("%w: %s must be true or false, got %T", ErrInvalidOption, key, val)
}

// ParseOptions turns "key=value" pairs into an options map. A bare key is
// read as "key=true".
func ParseOptions(pairs []string) (map[string]any, error) {
	opts := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, found := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrInvalidOption, p)
		}
		if !found {
			value = "true"
		}
		opts[key] = value
	}
	return opts, nil
}

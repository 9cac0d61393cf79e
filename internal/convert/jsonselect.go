package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPathNotFound is returned by SelectJSON when a path step does not exist.
var ErrPathNotFound = errors.New("path not found")

// SelectJSON follows a dot path such as "items.0.name" or "items[0].name"
// into a JSON document and returns the value there, pretty-printed. String
// values come back without quotes. An empty path selects the whole document.
func SelectJSON(input, path string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	current := json.RawMessage(strings.TrimSpace(input))
	if !json.Valid(current) {
		var v any
		return "", fmt.Errorf("invalid JSON: %w", json.Unmarshal(current, &v))
	}

	var walked []string
	for _, step := range pathSteps(path) {
		walked = append(walked, step)
		next, err := selectStep(current, step)
		if err != nil {
			return "", fmt.Errorf("%w: %s", err, strings.Join(walked, "."))
		}
		current = next
	}

	if firstByte(current) == '"' {
		var s string
		if err := json.Unmarshal(current, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, current, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

func pathSteps(path string) []string {
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	var steps []string
	for _, s := range strings.Split(path, ".") {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

func selectStep(current json.RawMessage, step string) (json.RawMessage, error) {
	switch firstByte(current) {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return nil, err
		}
		if v, ok := obj[step]; ok {
			return v, nil
		}
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(current, &arr); err != nil {
			return nil, err
		}
		if i, err := strconv.Atoi(step); err == nil && i >= 0 && i < len(arr) {
			return arr[i], nil
		}
	}
	return nil, ErrPathNotFound
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

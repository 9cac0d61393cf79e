package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSONToYAML re-renders a JSON document as block-style YAML, keeping key order.
func JSONToYAML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	if !json.Valid([]byte(input)) {
		var v any
		err := json.Unmarshal([]byte(input), &v)
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	blockStyle(&doc)
	return encodeYAML(&doc)
}

// YAMLToJSON converts a YAML document to pretty-printed JSON, keeping mapping
// key order.
func YAMLToJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", fmt.Errorf("invalid YAML: %w", err)
	}
	w := yamlWalker{active: make(map[*yaml.Node]bool)}
	raw, err := w.nodeJSON(&doc)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// FormatYAML normalises indentation and style of a YAML document.
func FormatYAML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmptyInput
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return "", fmt.Errorf("invalid YAML: %w", err)
	}
	return encodeYAML(&doc)
}

func encodeYAML(doc *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// blockStyle clears flow and quoting styles so the encoder picks plain block
// output. The encoder still quotes scalars whose plain form would change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// maxAliasExpansions bounds how many times aliases are followed in one
// document, so nested anchors cannot expand exponentially.
const maxAliasExpansions = 10000

// yamlWalker converts a node tree to JSON. active holds the anchors being
// expanded on the current path.
type yamlWalker struct {
	active  map[*yaml.Node]bool
	aliases int
}

func (w *yamlWalker) nodeJSON(n *yaml.Node) (json.RawMessage, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return json.RawMessage("null"), nil
		}
		return w.nodeJSON(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil || w.active[n.Alias] {
			return nil, fmt.Errorf("invalid YAML: recursive alias *%s at line %d", n.Value, n.Line)
		}
		w.aliases++
		if w.aliases > maxAliasExpansions {
			return nil, fmt.Errorf("invalid YAML: more than %d alias expansions", maxAliasExpansions)
		}
		w.active[n.Alias] = true
		defer delete(w.active, n.Alias)
		return w.nodeJSON(n.Alias)
	case yaml.MappingNode:
		rec := make(record, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Tag == "!!merge" {
				continue
			}
			v, err := w.nodeJSON(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			rec.set(n.Content[i].Value, v)
		}
		return rec.MarshalJSON()
	case yaml.SequenceNode:
		items := make([]json.RawMessage, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.nodeJSON(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return json.Marshal(items)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid YAML scalar at line %d: %w", n.Line, err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("YAML value at line %d has no JSON form: %w", n.Line, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d", n.Kind)
}

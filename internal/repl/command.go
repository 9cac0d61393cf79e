package repl

import (
	"errors"
	"strings"
)

// ErrEmptyCommand is returned by ParseCommand for blank input.
var ErrEmptyCommand = errors.New("empty command")

// Command represents a parsed command
type Command struct {
	Verb string
	Args []string
	// Inline holds the text after a "--" argument, used as tool input.
	Inline    string
	HasInline bool
}

// ParseCommand parses a verb-first command string. Everything after a bare
// "--" is kept verbatim as inline input.
func ParseCommand(input string) (*Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyCommand
	}

	head, inline, hasInline := strings.Cut(input, " -- ")
	if !hasInline && strings.HasSuffix(head, " --") {
		head, hasInline = strings.TrimSuffix(head, " --"), true
	}

	parts := splitArgs(head)
	if len(parts) == 0 {
		return nil, ErrEmptyCommand
	}

	return &Command{
		Verb:      strings.ToLower(parts[0]),
		Args:      parts[1:],
		Inline:    inline,
		HasInline: hasInline,
	}, nil
}

// splitArgs splits a command string into arguments, respecting quotes
func splitArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)
	escaped := false
	started := false

	for _, ch := range input {
		if escaped {
			current.WriteRune(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			started = true
			continue
		}

		if (ch == '"' || ch == '\'') && !inQuotes {
			inQuotes = true
			quoteChar = ch
			started = true
			continue
		}

		if ch == quoteChar && inQuotes {
			inQuotes = false
			quoteChar = 0
			continue
		}

		if (ch == ' ' || ch == '\t') && !inQuotes {
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
			continue
		}

		current.WriteRune(ch)
		started = true
	}

	if started {
		args = append(args, current.String())
	}

	return args
}

package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/format"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/textstyle"
)

// Sentinel errors for dispatch failures.
var (
	ErrUnsupportedTool = errors.New("unsupported tool")
	ErrMissingInput    = errors.New("missing input")
	ErrInvalidOption   = errors.New("invalid option")
	ErrInvalidInput    = errors.New("invalid input")
)

// Code is a coarse error class used in logs and responses.
type Code string

const (
	CodeUnsupported  Code = "unsupported"
	CodeInvalidInput Code = "invalid_input"
	CodeInternal     Code = "internal"
)

// Classify maps an error to its Code. A nil error has no code.
func Classify(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedTool),
		errors.Is(err, format.ErrUnsupportedFormat),
		errors.Is(err, textstyle.ErrUnknownStyle):
		return CodeUnsupported
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrMissingInput),
		errors.Is(err, ErrInvalidOption):
		return CodeInvalidInput
	}
	return CodeInternal
}

// UnsupportedError reports an unknown tool name with close matches.
type UnsupportedError struct {
	Tool        string
	Suggestions []string
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrUnsupportedTool, e.Tool)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupportedTool }

// ToolError wraps an error returned by a tool. It matches ErrInvalidInput
// since tools only fail on their input.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string { return e.Tool + ": " + e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

func (e *ToolError) Is(target error) bool { return target == ErrInvalidInput }

// Package protocol defines the socket wire format: JSON commands and
// responses, each sent as one length-prefixed frame (4-byte big-endian
// length followed by the payload).
package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxMessageBytes bounds a single frame unless configured otherwise.
const DefaultMaxMessageBytes = 8 << 20

// ErrFrameTooLarge is returned when a frame header announces more bytes
// than the reader accepts.
var ErrFrameTooLarge = errors.New("frame too large")

// Actions understood by the server.
const (
	ActionRun      = "run"
	ActionList     = "list_tools"
	ActionDescribe = "describe_tool"
	ActionPing     = "ping"
	ActionPipeline = "pipeline"
)

// Command is a request frame.
type Command struct {
	Action string         `json:"action"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is a reply frame. Code is set on failures.
type Response struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Success builds a successful response around result.
func Success(result any) Response {
	data, err := json.Marshal(result)
	if err != nil {
		return Failure("encode result: "+err.Error(), "internal")
	}
	return Response{Success: true, Result: data}
}

// Failure builds an error response.
func Failure(msg, code string) Response {
	return Response{Success: false, Error: msg, Code: code}
}

// ReadFrame reads one frame. A max of zero or less disables the limit.
// The payload of an oversized frame is left unread.
func ReadFrame(r io.Reader, max int) ([]byte, error) {
	var lengthBuf [4]byte
	if _, err := io.ReadFull(r, lengthBuf[:]); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(lengthBuf[:])
	if max > 0 && uint64(length) > uint64(max) {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFrameTooLarge, length, max)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFrame writes data as one frame.
func WriteFrame(w io.Writer, data []byte) error {
	if uint64(len(data)) > 0xFFFFFFFF {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}
	buf := make([]byte, 4+len(data))
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	copy(buf[4:], data)
	_, err := w.Write(buf)
	return err
}

// WriteJSON marshals v and writes it as one frame.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return WriteFrame(w, data)
}

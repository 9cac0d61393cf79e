package protocol

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	messages := []string{`{"action":"ping"}`, "", "ünïcode"}
	for _, m := range messages {
		if err := WriteFrame(&buf, []byte(m)); err != nil {
			t.Fatalf("Failed to write frame: %v", err)
		}
	}

	for _, m := range messages {
		got, err := ReadFrame(&buf, 1024)
		if err != nil {
			t.Fatalf("Failed to read frame: %v", err)
		}
		if string(got) != m {
			t.Errorf("Expected %q, got %q", m, got)
		}
	}

	if _, err := ReadFrame(&buf, 1024); err != io.EOF {
		t.Errorf("Expected io.EOF after last frame, got %v", err)
	}
}

func TestFrameHeaderIsBigEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("abc")); err != nil {
		t.Fatalf("Failed to write frame: %v", err)
	}
	expected := []byte{0, 0, 0, 3, 'a', 'b', 'c'}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Expected %v, got %v", expected, buf.Bytes())
	}
}

func TestReadFrameTooLarge(t *testing.T) {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], 100)
	r := bytes.NewReader(append(header[:], make([]byte, 100)...))

	if _, err := ReadFrame(r, 10); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("Expected ErrFrameTooLarge, got %v", err)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	r := bytes.NewReader([]byte{0, 0, 0, 9, 'x'})
	if _, err := ReadFrame(r, 0); err != io.ErrUnexpectedEOF {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestResponses(t *testing.T) {
	ok := Success(map[string]int{"n": 1})
	if !ok.Success || string(ok.Result) != `{"n":1}` {
		t.Errorf("Unexpected success response %+v", ok)
	}

	fail := Failure("boom", "internal")
	data, err := json.Marshal(fail)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `{"success":false,"error":"boom","code":"internal"}` {
		t.Errorf("Unexpected failure encoding %s", data)
	}
}

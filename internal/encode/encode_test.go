package encode

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBase64(t *testing.T) {
	tests := []struct {
		input   string
		urlSafe bool
		encoded string
	}{
		{"hello", false, "aGVsbG8="},
		{"", false, ""},
		{"\xfb\xff", false, "+/8="},
		{"\xfb\xff", true, "-_8="},
		{"héllo wörld", false, "aMOpbGxvIHfDtnJsZA=="},
	}

	for _, tt := range tests {
		got := Base64Encode(tt.input, tt.urlSafe)
		if got != tt.encoded {
			t.Errorf("Base64Encode(%q): expected %q, got %q", tt.input, tt.encoded, got)
		}
		back, err := Base64Decode(got, tt.urlSafe)
		if err != nil {
			t.Fatalf("Base64Decode(%q) failed: %v", got, err)
		}
		if back != tt.input {
			t.Errorf("Round trip mismatch: %q -> %q", tt.input, back)
		}
	}
}

func TestBase64DecodeLenient(t *testing.T) {
	got, err := Base64Decode("aGVs\nbG8", false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Expected %q, got %q", "hello", got)
	}
}

func TestBase64DecodeInvalid(t *testing.T) {
	for _, in := range []string{"@@@@", "aGVsbG8=x", "a"} {
		if _, err := Base64Decode(in, false); !errors.Is(err, ErrInvalidBase64) {
			t.Errorf("%q: expected ErrInvalidBase64, got %v", in, err)
		}
	}
}

func TestURL(t *testing.T) {
	if got := URLEncode("a b&c=d/é"); got != "a%20b%26c%3Dd%2F%C3%A9" {
		t.Errorf("Unexpected encoding %q", got)
	}
	got, err := URLDecode("a+b%20c%2F")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "a b c/" {
		t.Errorf("Unexpected decoding %q", got)
	}
	if _, err := URLDecode("%zz"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Expected ErrInvalidURL, got %v", err)
	}
}

func TestHTML(t *testing.T) {
	enc := HTMLEncode(`<a href="x">Tom & 'Jerry'</a>`)
	expected := "&lt;a href=&#34;x&#34;&gt;Tom &amp; &#39;Jerry&#39;&lt;/a&gt;"
	if enc != expected {
		t.Errorf("Expected %q, got %q", expected, enc)
	}
	if got := HTMLDecode("&copy; &#169; &#xA9; &amp;"); got != "© © © &" {
		t.Errorf("Unexpected decoding %q", got)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		algorithm string
		expected  string
	}{
		{"md5", "5d41402abc4b2a76b9719d911017c592"},
		{"SHA1", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"sha-256", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}
	for _, tt := range tests {
		got, err := Hash(tt.algorithm, "hello")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.algorithm, err)
		}
		if got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.algorithm, tt.expected, got)
		}
	}

	sum, err := Hash("sha512", "hello")
	if err != nil || len(sum) != 128 {
		t.Errorf("Expected 128 hex chars for sha512, got %d (%v)", len(sum), err)
	}
	if _, err := Hash("crc32", "x"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestUUIDs(t *testing.T) {
	ids, err := UUIDs(5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	v4 := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	seen := map[string]bool{}
	for _, id := range ids {
		if !v4.MatchString(id) {
			t.Errorf("Not a v4 UUID: %s", id)
		}
		if seen[id] {
			t.Errorf("Duplicate UUID %s", id)
		}
		seen[id] = true
	}
	if _, err := UUIDs(0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Expected ErrInvalidLength, got %v", err)
	}
}

func TestPassword(t *testing.T) {
	opts := PasswordOptions{Length: 16, Upper: true, Lower: true, Digits: true, Symbols: true}
	for i := 0; i < 20; i++ {
		p, err := Password(opts)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(p) != 16 {
			t.Fatalf("Expected length 16, got %d", len(p))
		}
		for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
			if !strings.ContainsAny(p, set) {
				t.Errorf("Password %q misses a class", p)
			}
		}
	}

	p, err := Password(PasswordOptions{Length: 8, Digits: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Trim(p, digitChars) != "" {
		t.Errorf("Expected digits only, got %q", p)
	}

	if _, err := Password(PasswordOptions{Length: 8}); !errors.Is(err, ErrEmptyCharset) {
		t.Errorf("Expected ErrEmptyCharset, got %v", err)
	}
	if _, err := Password(PasswordOptions{Length: 1, Upper: true, Lower: true}); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Expected ErrInvalidLength, got %v", err)
	}
}

func TestBcrypt(t *testing.T) {
	hashed, err := Bcrypt("secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !BcryptMatch(hashed, "secret") {
		t.Error("Expected hash to match")
	}
	if BcryptMatch(hashed, "other") {
		t.Error("Expected mismatch")
	}
	if _, err := Bcrypt("x", 99); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Expected ErrInvalidLength, got %v", err)
	}
}

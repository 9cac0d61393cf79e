// Package encode holds the encoders, decoders and generators backed by
// standard primitives: Base64, URL and HTML escaping, digests, UUIDs,
// passwords and bcrypt.
package encode

import (
	"crypto/md5"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"html"
	"math/big"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Errors returned for invalid encoder input.
var (
	ErrInvalidBase64    = errors.New("invalid Base64 input")
	ErrInvalidURL       = errors.New("invalid URL-encoded input")
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	ErrInvalidLength    = errors.New("invalid length")
	ErrEmptyCharset     = errors.New("no character classes selected")
)

// Base64Encode encodes s with the standard alphabet, or the URL-safe one
// when urlSafe is set.
func Base64Encode(s string, urlSafe bool) string {
	if urlSafe {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Base64Decode decodes s, ignoring surrounding and embedded line breaks and
// accepting input with the padding stripped.
func Base64Decode(s string, urlSafe bool) (string, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)

	enc, raw := base64.StdEncoding, base64.RawStdEncoding
	if urlSafe {
		enc, raw = base64.URLEncoding, base64.RawURLEncoding
	}
	if !strings.HasSuffix(s, "=") && len(s)%4 != 0 {
		enc = raw
	}
	out, err := enc.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return string(out), nil
}

// URLEncode percent-encodes s for use as a query component. Spaces become
// %20 rather than '+'.
func URLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// URLDecode reverses URLEncode and also accepts '+' for space.
func URLDecode(s string) (string, error) {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return out, nil
}

// HTMLEncode escapes <, >, &, ' and ".
func HTMLEncode(s string) string {
	return html.EscapeString(s)
}

// HTMLDecode unescapes named and numeric character references.
func HTMLDecode(s string) string {
	return html.UnescapeString(s)
}

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// Algorithms lists the supported digest names.
func Algorithms() []string {
	out := make([]string, 0, len(algorithms))
	for k := range algorithms {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Hash returns the lower-case hex digest of s.
func Hash(algorithm, s string) (string, error) {
	name := strings.ToLower(strings.ReplaceAll(algorithm, "-", ""))
	newHash, ok := algorithms[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	h := newHash()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// UUIDs returns n random version 4 UUIDs.
func UUIDs(n int) ([]string, error) {
	if n < 1 || n > 1000 {
		return nil, fmt.Errorf("%w: count must be between 1 and 1000, got %d", ErrInvalidLength, n)
	}
	out := make([]string, n)
	for i := range out {
		id, err := uuid.NewRandom()
		if err != nil {
			return nil, err
		}
		out[i] = id.String()
	}
	return out, nil
}

// PasswordOptions selects the character classes of a generated password.
type PasswordOptions struct {
	Length  int
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"
)

// Password draws a random password from the selected classes using
// crypto/rand. Every selected class appears at least once.
func Password(opts PasswordOptions) (string, error) {
	var classes []string
	if opts.Upper {
		classes = append(classes, upperChars)
	}
	if opts.Lower {
		classes = append(classes, lowerChars)
	}
	if opts.Digits {
		classes = append(classes, digitChars)
	}
	if opts.Symbols {
		classes = append(classes, symbolChars)
	}
	if len(classes) == 0 {
		return "", ErrEmptyCharset
	}
	if opts.Length < len(classes) || opts.Length > 1024 {
		return "", fmt.Errorf("%w: length must be between %d and 1024, got %d", ErrInvalidLength, len(classes), opts.Length)
	}

	all := strings.Join(classes, "")
	out := make([]byte, opts.Length)
	for i := range out {
		set := all
		if i < len(classes) {
			set = classes[i]
		}
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		out[i] = c
	}
	// Shuffle so the guaranteed characters are not always at the front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		k := j.Int64()
		out[i], out[k] = out[k], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}

// Bcrypt hashes s with the given cost; cost 0 selects bcrypt.DefaultCost.
func Bcrypt(s string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: bcrypt cost must be between %d and %d", ErrInvalidLength, bcrypt.MinCost, bcrypt.MaxCost)
	}
	out, err := bcrypt.GenerateFromPassword([]byte(s), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// BcryptMatch reports whether s matches a bcrypt hash.
func BcryptMatch(hashed, s string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(s)) == nil
}

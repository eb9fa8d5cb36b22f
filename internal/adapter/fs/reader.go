package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when file content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader reads files as UTF-8 text.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadText reads the file at path and decodes it as UTF-8.
func (r *Reader) ReadText(path string) (string, error) {
	return ReadFile(path)
}

// ReadFile reads the file at path and decodes it as UTF-8. Unlike plain UTF-8
// decoding, a leading byte order mark is dropped instead of becoming part of
// the first token.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// ReadAll reads everything from rd and decodes it as UTF-8.
func ReadAll(rd io.Reader) (string, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return "", err
	}
	return Decode(data)
}

// Decode validates data as UTF-8 and returns it as a string.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// Package textfile loads practice texts from local sources.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
)

// MaxSize caps the size of a practice text file.
const MaxSize = 1 << 20

var (
	// ErrEmpty is returned when a source holds only whitespace.
	ErrEmpty = errors.New("text is empty")
	// ErrTooLarge is returned for files above MaxSize.
	ErrTooLarge = errors.New("text file is too large")
	// ErrNotText is returned for content that is not valid UTF-8.
	ErrNotText = errors.New("file is not UTF-8 text")
)

// readClipboard is replaced in tests.
var readClipboard = clipboard.ReadAll

// Load reads a practice text from path and trims surrounding whitespace.
func Load(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only text file.
			_ = cerr
		}
	}()

	data, err := io.ReadAll(io.LimitReader(bufio.NewReader(file), MaxSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxSize {
		return "", fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	return normalize(data)
}

// Clipboard returns the trimmed text currently on the system clipboard.
func Clipboard() (string, error) {
	text, err := readClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return normalize([]byte(text))
}

func normalize(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

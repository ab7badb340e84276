// Package patchlist turns patch server replies into ordered patch entries.
package patchlist

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser converts a raw patch list body. Entry order is the application order.
type Parser interface {
	Parse(text string) ([]Entry, error)
}

// ParseError keeps the list that could not be parsed.
type ParseError struct {
	List string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("patch list line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const (
	bootFields = 6
	gameFields = 9
)

// MultipartParser reads the multipart/mixed bodies of patch-bootver and
// patch-gamever. Boundary and part header lines are skipped.
type MultipartParser struct{}

var _ Parser = MultipartParser{}

func (MultipartParser) Parse(text string) ([]Entry, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var entries []Entry
	for i, line := range strings.Split(text, "\n") {
		if isFramingLine(line) {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{List: text, Line: i + 1, Err: err}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func isFramingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "--") ||
		strings.HasPrefix(strings.ToLower(trimmed), "content-")
}

// Field layout: length, total size, part count, part number, version id,
// then either url (boot) or hash type, block size, hashes, url (game).
func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != bootFields && len(fields) != gameFields {
		return Entry{}, fmt.Errorf("unexpected field count %d", len(fields))
	}

	length, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("length: %w", err)
	}

	entry := Entry{
		Length:    length,
		VersionID: fields[4],
	}

	if len(fields) == bootFields {
		entry.URL = fields[5]
		return entry, nil
	}

	blockSize, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("hash block size: %w", err)
	}
	entry.HashType = fields[5]
	entry.HashBlockSize = blockSize
	entry.Hashes = strings.Split(fields[7], ",")
	entry.URL = fields[8]
	return entry, nil
}

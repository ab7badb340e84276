package patchlist

import (
	"path"
	"strings"
)

// Entry is one patch the server reports as missing.
// Boot patches carry no hash information.
type Entry struct {
	Length        int64    `json:"length"`
	VersionID     string   `json:"versionId"`
	HashType      string   `json:"hashType,omitempty"`
	HashBlockSize int64    `json:"hashBlockSize,omitempty"`
	Hashes        []string `json:"hashes,omitempty"`
	URL           string   `json:"url"`
}

// Filename is the last path segment of the patch URL.
func (e Entry) Filename() string {
	u := e.URL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return path.Base(u)
}

// HasHashes reports whether the entry can be verified block by block.
func (e Entry) HasHashes() bool {
	return e.HashType != "" && e.HashBlockSize > 0 && len(e.Hashes) > 0
}

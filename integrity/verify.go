// Package integrity checks files against a declared length and per-block hashes.
// The same check validates downloaded patch files and installed game files.
package integrity

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/vuquang23/go-ffxiv/patchlist"
)

// Reason explains a verification result.
type Reason int

const (
	ReasonOK Reason = iota
	// ReasonUnknownAlgorithm results still pass.
	ReasonUnknownAlgorithm
	ReasonMissingFile
	ReasonLengthMismatch
	ReasonHashMismatch
	ReasonMissingHash
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonUnknownAlgorithm:
		return "unknown hash algorithm"
	case ReasonMissingFile:
		return "missing file"
	case ReasonLengthMismatch:
		return "length mismatch"
	case ReasonHashMismatch:
		return "hash mismatch"
	case ReasonMissingHash:
		return "missing block hash"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Result of one file check. Block is the failing block index, or -1.
type Result struct {
	Passed        bool
	Reason        Reason
	Block         int
	BlocksChecked int
}

var hashes = map[string]func() hash.Hash{
	"sha1": sha1.New,
}

var unknownAlgorithmPasses atomic.Int64

// UnknownAlgorithmPasses counts files that passed only because their hash
// algorithm is not supported.
func UnknownAlgorithmPasses() int64 {
	return unknownAlgorithmPasses.Load()
}

// Verifier serializes checks of the same path. Distinct paths run in parallel.
type Verifier struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

func NewVerifier() *Verifier {
	return &Verifier{locks: make(map[string]*pathLock)}
}

var defaultVerifier = NewVerifier()

// Verify checks path with the package level verifier.
func Verify(path string, length, blockSize int64, hashType string, blockHashes []string) (bool, error) {
	return defaultVerifier.Verify(path, length, blockSize, hashType, blockHashes)
}

func (v *Verifier) Verify(path string, length, blockSize int64, hashType string, blockHashes []string) (bool, error) {
	res, err := v.Check(path, length, blockSize, hashType, blockHashes)
	if err != nil {
		return false, err
	}
	return res.Passed, nil
}

// VerifyEntry checks a downloaded patch file against its patch list entry.
func (v *Verifier) VerifyEntry(path string, entry patchlist.Entry) (bool, error) {
	return v.Verify(path, entry.Length, entry.HashBlockSize, entry.HashType, entry.Hashes)
}

// Check hashes the file block by block and stops at the first mismatch.
func (v *Verifier) Check(path string, length, blockSize int64, hashType string, blockHashes []string) (Result, error) {
	newHash, ok := hashes[strings.ToLower(hashType)]
	if !ok {
		// Unknown algorithms pass so newer patch lists keep working.
		unknownAlgorithmPasses.Add(1)
		log.Warn().Str("path", path).Str("hashType", hashType).Msg("unsupported hash algorithm, skipping verification")
		return Result{Passed: true, Reason: ReasonUnknownAlgorithm, Block: -1}, nil
	}
	if blockSize <= 0 {
		return Result{}, fmt.Errorf("invalid block size %d", blockSize)
	}

	unlock := v.lock(path)
	defer unlock()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Reason: ReasonMissingFile, Block: -1}, nil
	}
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, err
	}
	if info.Size() != length {
		return Result{Reason: ReasonLengthMismatch, Block: -1}, nil
	}

	blocks := length / blockSize
	if length%blockSize != 0 {
		blocks++
	}
	h := newHash()
	for i := 0; int64(i) < blocks; i++ {
		if i >= len(blockHashes) {
			return Result{Reason: ReasonMissingHash, Block: i, BlocksChecked: i}, nil
		}

		n := blockSize
		if rest := length - int64(i)*blockSize; rest < n {
			n = rest
		}

		h.Reset()
		if _, err := io.CopyN(h, f, n); err != nil {
			return Result{}, fmt.Errorf("read block %d of %s: %w", i, path, err)
		}

		if hex.EncodeToString(h.Sum(nil)) != strings.ToLower(blockHashes[i]) {
			return Result{Reason: ReasonHashMismatch, Block: i, BlocksChecked: i + 1}, nil
		}
	}

	return Result{Passed: true, Reason: ReasonOK, Block: -1, BlocksChecked: int(blocks)}, nil
}

type pathLock struct {
	sync.Mutex
	refs int
}

// lock holds the mutex of the cleaned path. The entry is dropped once the
// last holder or waiter unlocks.
func (v *Verifier) lock(path string) func() {
	key := filepath.Clean(path)

	v.mu.Lock()
	l, ok := v.locks[key]
	if !ok {
		l = &pathLock{}
		v.locks[key] = l
	}
	l.refs++
	v.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		v.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(v.locks, key)
		}
		v.mu.Unlock()
	}
}

func (v *Verifier) lockCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.locks)
}

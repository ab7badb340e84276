package gamever

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BaseGameVersion is reported for missing version files and forced base checks.
const BaseGameVersion = "2012.01.01.0000.0000"

// Repository is one versioned part of a game installation.
type Repository int

const (
	Boot Repository = iota
	Ffxiv
	Ex1
	Ex2
	Ex3
	Ex4
	Ex5
)

// MaxKnownExpansion is the highest expansion with a repository on disk.
const MaxKnownExpansion = 5

func (r Repository) String() string {
	switch r {
	case Boot:
		return "ffxivboot"
	case Ffxiv:
		return "ffxivgame"
	case Ex1, Ex2, Ex3, Ex4, Ex5:
		return fmt.Sprintf("ex%d", r.Expansion())
	default:
		return fmt.Sprintf("Repository(%d)", int(r))
	}
}

// Expansion returns the expansion number, 0 for boot and base game.
func (r Repository) Expansion() int {
	if r < Ex1 {
		return 0
	}
	return int(r-Ex1) + 1
}

// VerFile is the path of the live (.ver) or backup (.bck) version file.
func (r Repository) VerFile(gamePath string, bck bool) string {
	ext := ".ver"
	if bck {
		ext = ".bck"
	}

	switch r {
	case Boot:
		return filepath.Join(gamePath, "boot", r.String()+ext)
	case Ffxiv:
		return filepath.Join(gamePath, "game", r.String()+ext)
	default:
		return filepath.Join(gamePath, "game", "sqpack", r.String(), r.String()+ext)
	}
}

// GetVer reads the raw version text. A missing file yields BaseGameVersion.
func (r Repository) GetVer(gamePath string, bck bool) (string, error) {
	b, err := os.ReadFile(r.VerFile(gamePath, bck))
	if errors.Is(err, fs.ErrNotExist) {
		return BaseGameVersion, nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s version: %w", r, err)
	}
	return string(b), nil
}

// Expansions lists the expansion repositories owned up to maxExpansion.
func Expansions(maxExpansion int) []Repository {
	if maxExpansion > MaxKnownExpansion {
		maxExpansion = MaxKnownExpansion
	}

	repos := make([]Repository, 0, MaxKnownExpansion)
	for ex := 1; ex <= maxExpansion; ex++ {
		repos = append(repos, Ex1+Repository(ex-1))
	}
	return repos
}

package gamever

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

type sanityResult struct {
	empty     bool
	newline   bool
	nullBytes bool
}

func (s sanityResult) bad() bool {
	return s.empty || s.newline || s.nullBytes
}

func checkSanity(text string) sanityResult {
	return sanityResult{
		empty:     strings.TrimSpace(text) == "",
		newline:   strings.Contains(text, "\n"),
		nullBytes: strings.Trim(text, "\x00") == "",
	}
}

// ValidateVersion rejects empty, multi-line and all-NUL version strings.
func ValidateVersion(text string) error {
	if s := checkSanity(text); s.bad() {
		return fmt.Errorf("%w: empty=%t newline=%t nullBytes=%t", ErrInvalidVersionFiles, s.empty, s.newline, s.nullBytes)
	}
	return nil
}

// EnsureVersionSanity checks the live and backup version files of the game
// and every owned expansion. All files are checked before failing.
func EnsureVersionSanity(gamePath string, maxExpansion int) error {
	repos := append([]Repository{Ffxiv}, Expansions(maxExpansion)...)

	failed := false
	for _, repo := range repos {
		for _, bck := range []bool{false, true} {
			text, err := repo.GetVer(gamePath, bck)
			if err != nil {
				return err
			}

			if err := ValidateVersion(text); err != nil {
				log.Error().Err(err).Stringer("repo", repo).Bool("bck", bck).Msg("version sanity check failed")
				failed = true
			}
		}
	}

	if failed {
		return ErrInvalidVersionFiles
	}
	return nil
}

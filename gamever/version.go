// Package gamever reads the version state of a local game installation and
// builds the tamper-evident reports sent to the patch servers.
package gamever

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BootFiles are hashed into every game version check.
var BootFiles = []string{
	"ffxivboot.exe",
	"ffxivboot64.exe",
	"ffxivlauncher64.exe",
	"ffxivupdater64.exe",
}

// BootVersion is the version used in the patch-bootver URL.
func BootVersion(gamePath string, forceBase bool) (string, error) {
	if forceBase {
		return BaseGameVersion, nil
	}
	return Boot.GetVer(gamePath, false)
}

// GameVersion is the version used in the patch-gamever URL.
func GameVersion(gamePath string, forceBase bool) (string, error) {
	if forceBase {
		return BaseGameVersion, nil
	}
	return Ffxiv.GetVer(gamePath, false)
}

// BootHash binds the boot version to the bytes of the boot executables:
// "<bootver>=name/len/sha1,name/len/sha1,...".
func BootHash(gamePath string) (string, error) {
	bootVer, err := Boot.GetVer(gamePath, false)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(BootFiles))
	for _, name := range BootFiles {
		hash, err := fileHash(filepath.Join(gamePath, "boot", name))
		if err != nil {
			return "", err
		}
		parts = append(parts, name+"/"+hash)
	}

	return bootVer + "=" + strings.Join(parts, ","), nil
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash boot file: %w", err)
	}
	defer f.Close()

	h := sha1.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", fmt.Errorf("hash boot file %s: %w", path, err)
	}
	return fmt.Sprintf("%d/%s", n, hex.EncodeToString(h.Sum(nil))), nil
}

// VersionReport is the body of the game version check: the boot hash, then
// one "exN\t<version>" line per owned expansion.
func VersionReport(gamePath string, maxExpansion int, forceBase bool) (string, error) {
	bootHash, err := BootHash(gamePath)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(bootHash)
	sb.WriteString("\n")

	for _, repo := range Expansions(maxExpansion) {
		ver := BaseGameVersion
		if !forceBase {
			if ver, err = repo.GetVer(gamePath, false); err != nil {
				return "", err
			}
		}
		fmt.Fprintf(&sb, "%s\t%s\n", repo, ver)
	}

	return sb.String(), nil
}

package gamever_test

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuquang23/go-ffxiv/gamever"
)

const (
	bootVer = "2023.01.10.0000.0001"
	gameVer = "2023.01.17.0000.0000"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// newGameTree lays out boot executables and version files up to maxExpansion.
func newGameTree(t *testing.T, maxExpansion int) string {
	t.Helper()
	root := t.TempDir()

	for _, name := range gamever.BootFiles {
		writeFile(t, filepath.Join(root, "boot", name), []byte("binary:"+name))
	}
	for _, bck := range []bool{false, true} {
		writeFile(t, gamever.Boot.VerFile(root, bck), []byte(bootVer))
		writeFile(t, gamever.Ffxiv.VerFile(root, bck), []byte(gameVer))
		for _, repo := range gamever.Expansions(maxExpansion) {
			writeFile(t, repo.VerFile(root, bck), []byte(fmt.Sprintf("2023.01.0%d.0000.0000", repo.Expansion())))
		}
	}
	return root
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestVerFile(t *testing.T) {
	root := "/games/ffxiv"
	assert.Equal(t, filepath.Join(root, "boot", "ffxivboot.ver"), gamever.Boot.VerFile(root, false))
	assert.Equal(t, filepath.Join(root, "game", "ffxivgame.bck"), gamever.Ffxiv.VerFile(root, true))
	assert.Equal(t, filepath.Join(root, "game", "sqpack", "ex3", "ex3.ver"), gamever.Ex3.VerFile(root, false))
}

func TestGetVer_MissingFile(t *testing.T) {
	ver, err := gamever.Ex2.GetVer(t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, gamever.BaseGameVersion, ver)
}

func TestExpansions(t *testing.T) {
	assert.Empty(t, gamever.Expansions(0))
	assert.Equal(t, []gamever.Repository{gamever.Ex1, gamever.Ex2}, gamever.Expansions(2))
	assert.Len(t, gamever.Expansions(9), gamever.MaxKnownExpansion)
}

func TestBootHash(t *testing.T) {
	root := newGameTree(t, 0)

	hash, err := gamever.BootHash(root)
	require.NoError(t, err)

	var parts []string
	for _, name := range gamever.BootFiles {
		content := "binary:" + name
		parts = append(parts, fmt.Sprintf("%s/%d/%s", name, len(content), sha1Hex(content)))
	}
	assert.Equal(t, bootVer+"="+strings.Join(parts, ","), hash)
}

func TestBootHash_TracksBytes(t *testing.T) {
	root := newGameTree(t, 0)
	before, err := gamever.BootHash(root)
	require.NoError(t, err)

	writeFile(t, filepath.Join(root, "boot", "ffxivboot.exe"), []byte("patched by someone else"))

	after, err := gamever.BootHash(root)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestBootHash_MissingExecutable(t *testing.T) {
	root := newGameTree(t, 0)
	require.NoError(t, os.Remove(filepath.Join(root, "boot", "ffxivupdater64.exe")))

	_, err := gamever.BootHash(root)
	require.Error(t, err)
}

func TestVersionReport(t *testing.T) {
	root := newGameTree(t, 5)

	report, err := gamever.VersionReport(root, 2, false)
	require.NoError(t, err)

	lines := strings.Split(report, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], bootVer+"=ffxivboot.exe/"))
	assert.Equal(t, "ex1\t2023.01.01.0000.0000", lines[1])
	assert.Equal(t, "ex2\t2023.01.02.0000.0000", lines[2])
	assert.Empty(t, lines[3])
	assert.NotContains(t, report, "ex3")
}

func TestVersionReport_ForceBase(t *testing.T) {
	root := newGameTree(t, 1)

	report, err := gamever.VersionReport(root, 1, true)
	require.NoError(t, err)
	assert.Contains(t, report, "ex1\t"+gamever.BaseGameVersion+"\n")
}

func TestGameAndBootVersion(t *testing.T) {
	root := newGameTree(t, 0)

	ver, err := gamever.GameVersion(root, false)
	require.NoError(t, err)
	assert.Equal(t, gameVer, ver)

	ver, err = gamever.BootVersion(root, true)
	require.NoError(t, err)
	assert.Equal(t, gamever.BaseGameVersion, ver)
}

package launcher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// MakeComputerID hashes the machine fingerprint to 4 bytes and prepends a
// checksum byte so that all 5 bytes sum to 0 mod 256.
func MakeComputerID(machineName, userName, osVersion string, processorCount int) string {
	h := fnv.New32a()
	h.Write([]byte(machineName + userName + osVersion + strconv.Itoa(processorCount)))

	var b [5]byte
	binary.LittleEndian.PutUint32(b[1:], h.Sum32())
	b[0] = -(b[1] + b[2] + b[3] + b[4])

	return hex.EncodeToString(b[:])
}

func localComputerID() string {
	machineName, _ := os.Hostname()

	userName := os.Getenv("USER")
	if u, err := user.Current(); err == nil {
		userName = u.Username
	}

	return MakeComputerID(machineName, userName, runtime.GOOS+"/"+runtime.GOARCH, runtime.NumCPU())
}

func launcherFormattedTimeLong(t time.Time) string {
	return t.UTC().Format("2006-01-02-15-04")
}

// launcherFormattedTimeLongRounded rounds the minutes down to ten.
func launcherFormattedTimeLongRounded(t time.Time) string {
	b := []byte(launcherFormattedTimeLong(t))
	b[len(b)-1] = '0'
	return string(b)
}

func (c *Client) frontierReferer(language ClientLanguage) string {
	langCode := strings.ReplaceAll(language.LangCode(false), "-", "_")
	return fmt.Sprintf(c.settings.FrontierURL, langCode, launcherFormattedTimeLong(c.now()))
}

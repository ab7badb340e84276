package launcher_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vuquang23/go-ffxiv/gamever"
	"github.com/vuquang23/go-ffxiv/launcher"
)

const (
	testBootVer = "2023.01.10.0000.0001"
	testGameVer = "2023.01.17.0000.0000"
	testStored  = "8a3f1c2e9b7d40aa51ce"
	testUID     = "UID-7f3c9a"
)

var fixedNow = time.Date(2023, 1, 2, 3, 47, 12, 0, time.UTC)

const topPage = `<html><body><form action="login.send" method="post">
	<input type="hidden" name="_STORED_" value="` + testStored + `">
</form></body></html>`

func sendReply(sessionID string, terms, playable bool, maxExpansion int) string {
	flag := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	return fmt.Sprintf(`<html><head><script>window.external.user("login=auth,ok,sid,%s,terms,%s,region,3,etmadd,0,playable,%s,ps3pkg,0,maxex,%d,product,1");</script></head></html>`,
		sessionID, flag(terms), flag(playable), maxExpansion)
}

const gameList = "--477D80B1_38BC_41d4_8B48_5273ADB89CAC\r\n" +
	"Content-Type: application/octet-stream\r\n" +
	"Content-Location: ffxivpatch/4e9a232b/metainfo/D2023.01.01.0000.0000.http\r\n" +
	"\r\n" +
	"52428800\t104857600\t2\t1\tD2023.01.20.0000.0000\tsha1\t50000000\taaaa,bbbb\thttp://patch-dl.ffxiv.com/game/4e9a232b/D2023.01.20.0000.0000.patch\r\n" +
	"1024\t1024\t1\t1\tH2023.01.21.0000.0000\tsha1\t50000000\tcccc\thttp://patch-dl.ffxiv.com/game/ex1/6b936f08/H2023.01.21.0000.0000.patch\r\n" +
	"--477D80B1_38BC_41d4_8B48_5273ADB89CAC--\r\n"

const bootList = "--477D80B1_38BC_41d4_8B48_5273ADB89CAC\r\n" +
	"Content-Type: application/octet-stream\r\n" +
	"\r\n" +
	"3000000\t3000000\t1\t1\tD2023.02.01.0000.0001\thttp://patch-dl.ffxiv.com/boot/2b5cbc63/D2023.02.01.0000.0001.patch\r\n" +
	"--477D80B1_38BC_41d4_8B48_5273ADB89CAC--\r\n"

// fakeSqex plays the login, patch and frontier servers.
type fakeSqex struct {
	*httptest.Server

	mu       sync.Mutex
	calls    map[string]int
	requests map[string]*http.Request
	form     url.Values
	report   string

	topReply   string
	sendReply  string
	// userReplies and sessionUIDs override sendReply and gameUID per sqexid
	// and per session id.
	userReplies map[string]string
	sessionUIDs map[string]string
	bootBody   string
	gameStatus int
	gameUID    string
	gameBody   string
	frontier   map[string]string
}

func newFakeSqex(t *testing.T) *fakeSqex {
	t.Helper()
	f := &fakeSqex{
		calls:      map[string]int{},
		requests:   map[string]*http.Request{},
		topReply:   topPage,
		sendReply:  sendReply("SESSION1", true, true, 2),
		gameStatus: http.StatusOK,
		gameUID:    testUID,
		frontier: map[string]string{
			"/worldStatus/gate_status.json":  `{"status":1}`,
			"/worldStatus/login_status.json": `{"status":0}`,
			"/news/headline.json":            `{"news":[{"date":"2023-01-02T03:00:00Z","title":"Maintenance","url":"https://example.com/1","id":"n1"}],"topics":[],"pinned":[]}`,
		},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeSqex) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.URL.Path
	switch {
	case strings.HasPrefix(key, "/http/win32/ffxivneo_release_boot/"):
		key = "bootver"
	case strings.HasPrefix(key, "/http/win32/ffxivneo_release_game/"):
		key = "gamever"
	}
	f.calls[key]++
	f.requests[key] = r

	switch key {
	case "/oauth/ffxivarr/login/top":
		_, _ = w.Write([]byte(f.topReply))
	case "/oauth/ffxivarr/login/login.send":
		f.form, _ = url.ParseQuery(string(body))
		reply, ok := f.userReplies[f.form.Get("sqexid")]
		if !ok {
			reply = f.sendReply
		}
		_, _ = w.Write([]byte(reply))
	case "bootver":
		_, _ = w.Write([]byte(f.bootBody))
	case "gamever":
		f.report = string(body)
		uid, ok := f.sessionUIDs[path.Base(r.URL.Path)]
		if !ok {
			uid = f.gameUID
		}
		if uid != "" {
			w.Header().Set("X-Patch-Unique-Id", uid)
		}
		w.WriteHeader(f.gameStatus)
		_, _ = w.Write([]byte(f.gameBody))
	case "/gen_token":
		if r.Header.Get("X-Patch-Unique-Id") != testUID {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(string(body) + "?token=abc"))
	default:
		reply, ok := f.frontier[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(reply))
	}
}

func (f *fakeSqex) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeSqex) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeSqex) request(key string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[key]
}

func (f *fakeSqex) newClient(t *testing.T, cache launcher.UniqueIDCache) *launcher.Client {
	t.Helper()
	c, err := launcher.New(launcher.LicenseWindows, cache, launcher.Settings{
		AcceptLanguage: "en-US,en;q=0.9",
		ClientLanguage: launcher.ClientLanguageEnglish,
		Timeout:        5 * time.Second,
	},
		launcher.WithEndpoints(launcher.Endpoints{
			Oauth:    f.URL,
			BootVer:  f.URL,
			GameVer:  f.URL,
			Frontier: f.URL,
		}),
		launcher.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func newGameTree(t *testing.T, maxExpansion int) string {
	t.Helper()
	root := t.TempDir()

	for _, name := range gamever.BootFiles {
		writeFile(t, filepath.Join(root, "boot", name), []byte("binary:"+name))
	}
	for _, bck := range []bool{false, true} {
		writeFile(t, gamever.Boot.VerFile(root, bck), []byte(testBootVer))
		writeFile(t, gamever.Ffxiv.VerFile(root, bck), []byte(testGameVer))
		for _, repo := range gamever.Expansions(maxExpansion) {
			writeFile(t, repo.VerFile(root, bck), []byte(testGameVer))
		}
	}
	return root
}

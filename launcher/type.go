package launcher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vuquang23/go-ffxiv/patchlist"
)

// LoginState is the terminal outcome of one login attempt.
type LoginState int

const (
	LoginStateUnknown LoginState = iota
	LoginStateOk
	LoginStateNeedsPatchGame
	LoginStateNeedsPatchBoot
	LoginStateNoService
	LoginStateNoTerms
	LoginStateNoLogin
)

var loginStateNames = map[LoginState]string{
	LoginStateUnknown:        "Unknown",
	LoginStateOk:             "Ok",
	LoginStateNeedsPatchGame: "NeedsPatchGame",
	LoginStateNeedsPatchBoot: "NeedsPatchBoot",
	LoginStateNoService:      "NoService",
	LoginStateNoTerms:        "NoTerms",
	LoginStateNoLogin:        "NoLogin",
}

func (s LoginState) String() string {
	if name, ok := loginStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("LoginState(%d)", int(s))
}

func (s LoginState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type LoginDetails struct {
	UserName string
	Password string
	// OTP is empty when the account has no authenticator.
	OTP string
}

type LoginOptions struct {
	UseCache         bool
	GamePath         string
	ForceBaseVersion bool
	IsFreeTrial      bool
}

type OauthLoginResult struct {
	SessionID     string `json:"sessionId"`
	Region        int    `json:"region"`
	TermsAccepted bool   `json:"termsAccepted"`
	Playable      bool   `json:"playable"`
	MaxExpansion  int    `json:"maxExpansion"`
}

type LoginResult struct {
	State          LoginState        `json:"state"`
	OauthLogin     *OauthLoginResult `json:"oauthLogin,omitempty"`
	UniqueID       string            `json:"uniqueId,omitempty"`
	PendingPatches []patchlist.Entry `json:"pendingPatches,omitempty"`
}

// GameVersionResult is the reply of patch-gamever. UniqueID authorizes
// patch downloads.
type GameVersionResult struct {
	UniqueID string
	Patches  []patchlist.Entry
}

// License selects the launcher flavour.
type License int

const (
	LicenseWindows License = iota
	LicenseMac
	LicenseSteam
)

func ParseLicense(s string) (License, error) {
	switch s {
	case "", "windows":
		return LicenseWindows, nil
	case "mac":
		return LicenseMac, nil
	case "steam":
		return LicenseSteam, nil
	default:
		return 0, fmt.Errorf("unknown license %q", s)
	}
}

type ClientLanguage int

const (
	ClientLanguageJapanese ClientLanguage = iota
	ClientLanguageEnglish
	ClientLanguageGerman
	ClientLanguageFrench
)

// LangCode is the frontier language code. forceNA picks en-us over en-gb.
func (l ClientLanguage) LangCode(forceNA bool) string {
	switch l {
	case ClientLanguageJapanese:
		return "ja"
	case ClientLanguageGerman:
		return "de"
	case ClientLanguageFrench:
		return "fr"
	default:
		if forceNA {
			return "en-us"
		}
		return "en-gb"
	}
}

func ParseClientLanguage(s string) (ClientLanguage, error) {
	switch s {
	case "ja", "japanese":
		return ClientLanguageJapanese, nil
	case "", "en", "english":
		return ClientLanguageEnglish, nil
	case "de", "german":
		return ClientLanguageGerman, nil
	case "fr", "french":
		return ClientLanguageFrench, nil
	default:
		return 0, fmt.Errorf("unknown client language %q", s)
	}
}

// Settings are the user preferences the protocol depends on.
type Settings struct {
	AcceptLanguage string
	ClientLanguage ClientLanguage
	// FrontierURL is a template taking rc_lang and time.
	FrontierURL string
	Timeout     time.Duration
}

// Endpoints are the base URLs of the remote services.
type Endpoints struct {
	Oauth    string
	BootVer  string
	GameVer  string
	Frontier string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Oauth:    defaultOauthBase,
		BootVer:  defaultBootVerBase,
		GameVer:  defaultGameVerBase,
		Frontier: defaultFrontierBase,
	}
}

// GateStatus reports whether the login gate is open.
type GateStatus struct {
	Status bool `json:"status"`
}

// UnmarshalJSON accepts both {"status":1} and {"status":true}.
func (g *GateStatus) UnmarshalJSON(b []byte) error {
	var raw struct {
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var n int
	if err := json.Unmarshal(raw.Status, &n); err == nil {
		g.Status = n != 0
		return nil
	}
	return json.Unmarshal(raw.Status, &g.Status)
}

type News struct {
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
	ID    string    `json:"id"`
	Tag   string    `json:"tag,omitempty"`
}

type Headlines struct {
	News   []News `json:"news"`
	Topics []News `json:"topics"`
	Pinned []News `json:"pinned"`
}

package launcher

import (
	"errors"
	"fmt"

	"github.com/vuquang23/go-ffxiv/oauthpage"
)

var (
	ErrMissingCredentials = errors.New("missing user name or password")
	ErrAuthentication     = errors.New("oauth login failed")
	ErrLoginRequired      = errors.New("game version check requires an oauth login")
	ErrNeedsPatchBoot     = errors.New("boot files changed since the last boot check")
	ErrVersionGone        = errors.New("the server no longer services the requested version")
	ErrMissingUniqueID    = errors.New("missing " + headerUniqueID + " header")
	ErrUnsupportedLicense = errors.New("unsupported license")

	// ErrSteamLinkNeeded means the account must log in through the Steam entry point.
	ErrSteamLinkNeeded = oauthpage.ErrSteamLinkNeeded
)

// OauthLoginError is an authentication failure. Document is the raw reply.
type OauthLoginError struct {
	Reason   string
	Document string
}

func (e *OauthLoginError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s", ErrAuthentication, e.Reason)
	}
	return ErrAuthentication.Error()
}

func (e *OauthLoginError) Unwrap() error {
	return ErrAuthentication
}

// InvalidResponseError is a reply that does not follow the protocol.
type InvalidResponseError struct {
	Msg        string
	StatusCode int
	Document   string
	Err        error
}

func (e *InvalidResponseError) Error() string {
	msg := e.Msg
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (%d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// VersionCheckLoginError ends a login attempt in State.
type VersionCheckLoginError struct {
	State LoginState
}

func (e *VersionCheckLoginError) Error() string {
	return fmt.Sprintf("version check ended login in state %s", e.State)
}

func (e *VersionCheckLoginError) Unwrap() error {
	switch e.State {
	case LoginStateNoLogin:
		return ErrLoginRequired
	case LoginStateNeedsPatchBoot:
		return ErrNeedsPatchBoot
	default:
		return nil
	}
}

package oauthpage

import "errors"

var (
	ErrSteamLinkNeeded       = errors.New("oauth top page asked to restart through the steam entry point")
	ErrStoredNotFound        = errors.New("could not get _STORED_")
	ErrNotAuthenticated      = errors.New("no login=auth,ok callback in reply")
	ErrMalformedLaunchParams = errors.New("malformed login=auth,ok launch parameters")
)

// DocumentError keeps the raw page that failed to parse.
type DocumentError struct {
	Err      error
	Document string
}

func (e *DocumentError) Error() string {
	return e.Err.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

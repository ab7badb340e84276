// Package oauthpage parses the pages served by the Square Enix OAuth login.
// None of these formats are documented, every shape seen in the wild has a test.
package oauthpage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const steamLinkMarker = `window.external.user("restartup");`

var (
	authOkRegex = regexp.MustCompile(`window\.external\.user\("login=auth,ok,([^"]*)"\);`)
	authNgRegex = regexp.MustCompile(`window\.external\.user\("login=auth,ng,err,([^"]*)"\);`)
)

// ExtractStored returns the hidden _STORED_ token of the login top page.
func ExtractStored(body string) (string, error) {
	if strings.Contains(body, steamLinkMarker) {
		return "", &DocumentError{Err: ErrSteamLinkNeeded, Document: body}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", &DocumentError{Err: fmt.Errorf("%w: %v", ErrStoredNotFound, err), Document: body}
	}

	stored, ok := doc.Find(`input[name="_STORED_"]`).First().Attr("value")
	if !ok || stored == "" {
		return "", &DocumentError{Err: ErrStoredNotFound, Document: body}
	}
	return stored, nil
}

// ParseLaunchParams finds the login=auth,ok callback in the login.send reply.
func ParseLaunchParams(body string) (LaunchParams, error) {
	m := authOkRegex.FindStringSubmatch(body)
	if m == nil {
		return LaunchParams{}, &DocumentError{Err: ErrNotAuthenticated, Document: body}
	}

	params, err := DecodeLaunchParams(m[1])
	if err != nil {
		return LaunchParams{}, &DocumentError{Err: err, Document: body}
	}
	return params, nil
}

// DecodeLaunchParams decodes the comma separated payload by position.
func DecodeLaunchParams(csv string) (LaunchParams, error) {
	fields := strings.Split(csv, ",")
	if len(fields) < minLaunchParams {
		return LaunchParams{}, fmt.Errorf("%w: %d fields", ErrMalformedLaunchParams, len(fields))
	}

	region, err := strconv.Atoi(fields[fieldRegion])
	if err != nil {
		return LaunchParams{}, fmt.Errorf("%w: region %q", ErrMalformedLaunchParams, fields[fieldRegion])
	}
	maxExpansion, err := strconv.Atoi(fields[fieldMaxExpansion])
	if err != nil || maxExpansion < 0 {
		return LaunchParams{}, fmt.Errorf("%w: max expansion %q", ErrMalformedLaunchParams, fields[fieldMaxExpansion])
	}

	return LaunchParams{
		SessionID:     fields[fieldSessionID],
		TermsAccepted: fields[fieldTermsAccepted] != "0",
		Region:        region,
		Playable:      fields[fieldPlayable] != "0",
		MaxExpansion:  maxExpansion,
	}, nil
}

// FailureReason returns the message of a login=auth,ng callback, or "".
func FailureReason(body string) string {
	m := authNgRegex.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return m[1]
}

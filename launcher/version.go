package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vuquang23/go-ffxiv/gamever"
	"github.com/vuquang23/go-ffxiv/netutil"
	"github.com/vuquang23/go-ffxiv/patchlist"
)

// CheckBootVersion asks patch-bootver for the boot patches missing locally.
// An empty reply means boot is up to date.
func (c *Client) CheckBootVersion(ctx context.Context, gamePath string, forceBaseVersion bool) ([]patchlist.Entry, error) {
	bootVersion, err := gamever.BootVersion(gamePath, forceBaseVersion)
	if err != nil {
		return nil, err
	}

	reqURL := c.endpoints.BootVer + fmt.Sprintf(bootVerPath, bootVersion, launcherFormattedTimeLongRounded(c.now()))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", patcherUserAgent)

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	text, err := netutil.ReadBody(response)
	if err != nil {
		return nil, err
	}
	if response.StatusCode >= http.StatusMultipleChoices {
		return nil, &InvalidResponseError{Msg: "boot version check failed", StatusCode: response.StatusCode, Document: text}
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	log.Debug().Str("list", text).Msg("boot patching is needed")
	return c.parsePatchList(text)
}

// CheckGameVersion reports the local versions to patch-gamever. oauth must
// come from a successful OauthLogin of the same attempt.
func (c *Client) CheckGameVersion(ctx context.Context, gamePath string, oauth *OauthLoginResult, forceBaseVersion bool) (*GameVersionResult, error) {
	if oauth == nil {
		return nil, &VersionCheckLoginError{State: LoginStateNoLogin}
	}

	gameVersion, err := gamever.GameVersion(gamePath, forceBaseVersion)
	if err != nil {
		return nil, err
	}

	if !forceBaseVersion {
		if err := gamever.EnsureVersionSanity(gamePath, oauth.MaxExpansion); err != nil {
			return nil, err
		}
	}

	report, err := gamever.VersionReport(gamePath, oauth.MaxExpansion, forceBaseVersion)
	if err != nil {
		return nil, err
	}

	reqURL := c.endpoints.GameVer + fmt.Sprintf(gameVerPath, gameVersion, oauth.SessionID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(report))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Connection", "Keep-Alive")
	request.Header.Set("User-Agent", patcherUserAgent)
	request.Header.Set(headerHashCheck, "enabled")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	text, err := netutil.ReadBody(response)
	if err != nil {
		return nil, err
	}

	switch response.StatusCode {
	case http.StatusConflict:
		// Boot was clean a moment ago, so its files were changed behind our back.
		// There is no patch list and no unique id in this reply.
		return nil, &VersionCheckLoginError{State: LoginStateNeedsPatchBoot}
	case http.StatusGone:
		return nil, &InvalidResponseError{Msg: "game version check", StatusCode: response.StatusCode, Document: text, Err: ErrVersionGone}
	}

	uniqueID := response.Header.Get(headerUniqueID)
	if uniqueID == "" {
		return nil, &InvalidResponseError{Msg: "game version check", StatusCode: response.StatusCode, Document: text, Err: ErrMissingUniqueID}
	}

	result := &GameVersionResult{UniqueID: uniqueID}
	if text == "" {
		return result, nil
	}

	log.Debug().Str("list", text).Msg("game patching is needed")
	if result.Patches, err = c.parsePatchList(text); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) parsePatchList(text string) ([]patchlist.Entry, error) {
	entries, err := c.parser.Parse(text)
	var parseErr *patchlist.ParseError
	if errors.As(err, &parseErr) {
		log.Info().Str("list", parseErr.List).Msg("could not parse patch list")
	}
	return entries, err
}

// GenPatchToken exchanges a patch URL for an authorized download URL.
func (c *Client) GenPatchToken(ctx context.Context, patchURL, uniqueID string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.GameVer+genTokenPath, strings.NewReader(patchURL))
	if err != nil {
		return "", err
	}
	request.Header.Set("Connection", "Keep-Alive")
	request.Header.Set(headerUniqueID, uniqueID)
	request.Header.Set("User-Agent", patcherUserAgent)
	request.Header.Set("Content-Type", "text/plain; charset=utf-8")

	response, err := c.client.Do(request)
	if err != nil {
		return "", err
	}
	text, err := netutil.ReadBody(response)
	if err != nil {
		return "", err
	}
	if response.StatusCode != http.StatusOK {
		return "", &InvalidResponseError{Msg: "gen_token", StatusCode: response.StatusCode, Document: text}
	}
	return text, nil
}

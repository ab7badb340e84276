package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vuquang23/go-ffxiv/netutil"
	"github.com/vuquang23/go-ffxiv/oauthpage"
)

// Login authenticates and negotiates versions. A cached unique id skips the
// network entirely and resolves to LoginStateOk.
func (c *Client) Login(ctx context.Context, details LoginDetails, opts LoginOptions) (*LoginResult, error) {
	logger := log.With().Str("attempt", uuid.NewString()).Logger()
	logger.Info().Bool("cache", opts.UseCache).Bool("forceBase", opts.ForceBaseVersion).Msg("login")

	if details.UserName == "" {
		return nil, ErrMissingCredentials
	}

	if opts.UseCache && c.cache != nil {
		if cached, ok := c.cache.TryGet(details.UserName); ok {
			logger.Info().Msg("cached unique id found, using instead")
			return &LoginResult{
				State: LoginStateOk,
				OauthLogin: &OauthLoginResult{
					Playable:      true,
					TermsAccepted: true,
					Region:        cached.Region,
					MaxExpansion:  cached.MaxExpansion,
				},
				UniqueID: cached.UniqueID,
			}, nil
		}
	}

	if details.Password == "" {
		return nil, ErrMissingCredentials
	}

	oauth, err := c.OauthLogin(ctx, details, opts.IsFreeTrial)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Bool("playable", oauth.Playable).
		Bool("terms", oauth.TermsAccepted).
		Int("region", oauth.Region).
		Int("expack", oauth.MaxExpansion).
		Msg("oauth login successful")

	result := &LoginResult{OauthLogin: oauth}
	if !oauth.Playable {
		result.State = LoginStateNoService
		return result, nil
	}
	if !oauth.TermsAccepted {
		result.State = LoginStateNoTerms
		return result, nil
	}

	gv, err := c.CheckGameVersion(ctx, opts.GamePath, oauth, opts.ForceBaseVersion)
	var vcErr *VersionCheckLoginError
	switch {
	case errors.As(err, &vcErr):
		logger.Warn().Stringer("state", vcErr.State).Msg("version check ended login")
		result.State = vcErr.State
		return result, nil
	case err != nil:
		return nil, err
	}

	result.UniqueID = gv.UniqueID
	result.PendingPatches = gv.Patches
	result.State = LoginStateOk
	if len(gv.Patches) > 0 {
		result.State = LoginStateNeedsPatchGame
	}
	logger.Info().Stringer("state", result.State).Int("patches", len(gv.Patches)).Msg("login finished")

	// NeedsPatchGame is not cached: a cache hit always resolves to Ok.
	if opts.UseCache && c.cache != nil && result.State == LoginStateOk {
		c.cache.Add(details.UserName, result.UniqueID, oauth.Region, oauth.MaxExpansion)
	}

	return result, nil
}

// OauthLogin runs the two phase login: fetch _STORED_ from the top page,
// then post it back with the credentials.
func (c *Client) OauthLogin(ctx context.Context, details LoginDetails, isFreeTrial bool) (*OauthLoginResult, error) {
	topURL := c.oauthTopURL(oauthRegion, isFreeTrial)

	stored, err := c.getOauthTop(ctx, topURL)
	if err != nil {
		return nil, err
	}
	return c.doOauthLogin(ctx, stored, topURL, details)
}

func (c *Client) oauthTopURL(region int, isFreeTrial bool) string {
	isft := "0"
	if isFreeTrial {
		isft = "1"
	}
	query := url.Values{
		"lng":       {"en"},
		"rgn":       {fmt.Sprint(region)},
		"isft":      {isft},
		"cssmode":   {"1"},
		"isnew":     {"1"},
		"launchver": {"3"},
	}
	return c.endpoints.Oauth + oauthTopPath + "?" + query.Encode()
}

func (c *Client) getOauthTop(ctx context.Context, topURL string) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, topURL, nil)
	if err != nil {
		return "", err
	}
	netutil.SetHeaders(request, map[string]string{
		"Accept":          oauthAccept,
		"Referer":         c.frontierReferer(c.settings.ClientLanguage),
		"Accept-Language": c.settings.AcceptLanguage,
		"User-Agent":      c.userAgent,
		"Connection":      "Keep-Alive",
		"Cookie":          `_rsid=""`,
	})

	response, err := c.client.Do(request)
	if err != nil {
		return "", err
	}
	text, err := netutil.ReadBody(response)
	if err != nil {
		return "", err
	}

	stored, err := oauthpage.ExtractStored(text)
	if err != nil {
		log.Error().Err(err).Int("status", response.StatusCode).Msg("oauth top page")
		return "", &InvalidResponseError{Msg: "could not read oauth top page", StatusCode: response.StatusCode, Document: text, Err: err}
	}
	return stored, nil
}

func (c *Client) doOauthLogin(ctx context.Context, stored, topURL string, details LoginDetails) (*OauthLoginResult, error) {
	request, err := netutil.NewPostForm(ctx, c.endpoints.Oauth+oauthSendPath, netutil.ToUrlValues(map[string]string{
		"_STORED_": stored,
		"sqexid":   details.UserName,
		"password": details.Password,
		"otppw":    details.OTP,
	}))
	if err != nil {
		return nil, err
	}
	netutil.SetHeaders(request, map[string]string{
		"Accept":          oauthAccept,
		"Referer":         topURL,
		"Accept-Language": c.settings.AcceptLanguage,
		"User-Agent":      c.userAgent,
		"Connection":      "Keep-Alive",
		"Cache-Control":   "no-cache",
		"Cookie":          `_rsid=""`,
	})

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	reply, err := netutil.ReadBody(response)
	if err != nil {
		return nil, err
	}

	params, err := oauthpage.ParseLaunchParams(reply)
	switch {
	case errors.Is(err, oauthpage.ErrNotAuthenticated):
		return nil, &OauthLoginError{Reason: oauthpage.FailureReason(reply), Document: reply}
	case err != nil:
		return nil, &InvalidResponseError{Msg: "could not read oauth login reply", StatusCode: response.StatusCode, Document: reply, Err: err}
	}

	return &OauthLoginResult{
		SessionID:     params.SessionID,
		Region:        params.Region,
		TermsAccepted: params.TermsAccepted,
		Playable:      params.Playable,
		MaxExpansion:  params.MaxExpansion,
	}, nil
}

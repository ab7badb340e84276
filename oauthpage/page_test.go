package oauthpage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuquang23/go-ffxiv/oauthpage"
)

const topPage = `<!DOCTYPE html>
<html>
<head><title>Square Enix Account</title></head>
<body>
<form name="mainForm" action="login.send" method="post">
	<input type="hidden" name="_STORED_" value="8a3f1c2e9b7d40aa51ce">
	<input type="text" name="sqexid" value="">
	<input type="password" name="password" value="">
	<input type="text" name="otppw" value="">
</form>
</body>
</html>`

const steamTopPage = `<html><head><script>
window.external.user("restartup");
</script></head><body></body></html>`

func TestExtractStored(t *testing.T) {
	stored, err := oauthpage.ExtractStored(topPage)
	require.NoError(t, err)
	assert.Equal(t, "8a3f1c2e9b7d40aa51ce", stored)
}

func TestExtractStored_SteamLink(t *testing.T) {
	_, err := oauthpage.ExtractStored(steamTopPage)
	require.ErrorIs(t, err, oauthpage.ErrSteamLinkNeeded)
	assert.NotErrorIs(t, err, oauthpage.ErrStoredNotFound)

	var docErr *oauthpage.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, steamTopPage, docErr.Document)
}

func TestExtractStored_Missing(t *testing.T) {
	for name, body := range map[string]string{
		"empty":       "",
		"no input":    "<html><body><p>maintenance</p></body></html>",
		"empty value": `<html><body><input type="hidden" name="_STORED_" value=""></body></html>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := oauthpage.ExtractStored(body)
			require.ErrorIs(t, err, oauthpage.ErrStoredNotFound)
		})
	}
}

func TestDecodeLaunchParams(t *testing.T) {
	params, err := oauthpage.DecodeLaunchParams("x,SESSION1,x,1,x,3,x,x,x,1,x,x,x,2")
	require.NoError(t, err)
	assert.Equal(t, oauthpage.LaunchParams{
		SessionID:     "SESSION1",
		TermsAccepted: true,
		Region:        3,
		Playable:      true,
		MaxExpansion:  2,
	}, params)
}

func TestDecodeLaunchParams_Flags(t *testing.T) {
	params, err := oauthpage.DecodeLaunchParams("sid,S,x,0,x,1,x,x,x,0,x,x,x,5")
	require.NoError(t, err)
	assert.False(t, params.TermsAccepted)
	assert.False(t, params.Playable)
	assert.Equal(t, 1, params.Region)
	assert.Equal(t, 5, params.MaxExpansion)
}

func TestDecodeLaunchParams_Malformed(t *testing.T) {
	for name, csv := range map[string]string{
		"too short":         "x,SESSION1,x,1,x,3",
		"region not number": "x,S,x,1,x,eu,x,x,x,1,x,x,x,2",
		"expansion missing": "x,S,x,1,x,3,x,x,x,1,x,x,x,",
		"negative":          "x,S,x,1,x,3,x,x,x,1,x,x,x,-1",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := oauthpage.DecodeLaunchParams(csv)
			require.ErrorIs(t, err, oauthpage.ErrMalformedLaunchParams)
		})
	}
}

func TestParseLaunchParams(t *testing.T) {
	body := `<html><head><script type="text/javascript">
window.external.user("login=auth,ok,sid,ABCDEF0123,terms,1,region,3,etmadd,0,playable,1,ps3pkg,0,maxex,4,product,1");
</script></head></html>`

	params, err := oauthpage.ParseLaunchParams(body)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEF0123", params.SessionID)
	assert.True(t, params.TermsAccepted)
	assert.Equal(t, 3, params.Region)
	assert.True(t, params.Playable)
	assert.Equal(t, 4, params.MaxExpansion)
}

func TestParseLaunchParams_NoMarker(t *testing.T) {
	body := `<script>window.external.user("login=auth,ng,err,ID or password is incorrect.");</script>`

	params, err := oauthpage.ParseLaunchParams(body)
	require.ErrorIs(t, err, oauthpage.ErrNotAuthenticated)
	assert.Equal(t, oauthpage.LaunchParams{}, params)

	var docErr *oauthpage.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, body, docErr.Document)
	assert.Equal(t, "ID or password is incorrect.", oauthpage.FailureReason(body))
}

func TestParseLaunchParams_ShortPayload(t *testing.T) {
	body := `window.external.user("login=auth,ok,sid,ABC,terms,1");`

	params, err := oauthpage.ParseLaunchParams(body)
	require.ErrorIs(t, err, oauthpage.ErrMalformedLaunchParams)
	assert.Equal(t, oauthpage.LaunchParams{}, params)
}

func TestFailureReason_None(t *testing.T) {
	assert.Empty(t, oauthpage.FailureReason("<html></html>"))
}

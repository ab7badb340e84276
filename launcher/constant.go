package launcher

const (
	defaultOauthBase    = "https://ffxiv-login.square-enix.com"
	defaultBootVerBase  = "http://patch-bootver.ffxiv.com"
	defaultGameVerBase  = "https://patch-gamever.ffxiv.com"
	defaultFrontierBase = "https://frontier.ffxiv.com"

	// DefaultFrontierURL takes rc_lang and time.
	DefaultFrontierURL = "https://launcher.finalfantasyxiv.com/v650/index.html?rc_lang=%s&time=%s"

	launcherOrigin = "https://launcher.finalfantasyxiv.com"

	oauthTopPath  = "/oauth/ffxivarr/login/top"
	oauthSendPath = "/oauth/ffxivarr/login/login.send"
	bootVerPath   = "/http/win32/ffxivneo_release_boot/%s/?time=%s"
	gameVerPath   = "/http/win32/ffxivneo_release_game/%s/%s"
	genTokenPath  = "/gen_token"
	gateStatus    = "/worldStatus/gate_status.json?lang=%s&_=%d"
	loginStatus   = "/worldStatus/login_status.json?_=%d"
	headlinePath  = "/news/headline.json?lang=%s&media=pcapp&_=%d"
)

const (
	// userAgentTemplate takes the computer id.
	userAgentTemplate = "SQEXAuthor/2.0.0(Windows 6.2; ja-jp; %s)"
	macUserAgent      = "macSQEXAuthor/2.0.0(MacOSX; ja-jp)"
	patcherUserAgent  = "FFXIV PATCH CLIENT"

	oauthAccept = "image/gif, image/jpeg, image/pjpeg, application/x-ms-application, application/xaml+xml, application/x-ms-xbap, */*"

	headerUniqueID  = "X-Patch-Unique-Id"
	headerHashCheck = "X-Hash-Check"
)

// oauthRegion is the rgn parameter of the login top page.
const oauthRegion = 3

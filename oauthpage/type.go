package oauthpage

// Positions inside the comma separated payload of login=auth,ok.
const (
	fieldSessionID     = 1
	fieldTermsAccepted = 3
	fieldRegion        = 5
	fieldPlayable      = 9
	fieldMaxExpansion  = 13

	minLaunchParams = fieldMaxExpansion + 1
)

// LaunchParams is the decoded login=auth,ok payload.
type LaunchParams struct {
	SessionID     string
	TermsAccepted bool
	Region        int
	Playable      bool
	MaxExpansion  int
}

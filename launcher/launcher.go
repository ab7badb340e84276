// Package launcher runs the session bootstrap against the Square Enix
// login and patch servers: OAuth login, boot and game version checks, and
// the frontier status pages.
package launcher

import (
	"context"

	"github.com/vuquang23/go-ffxiv/patchlist"
	"github.com/vuquang23/go-ffxiv/uidcache"
)

type Launcher interface {
	Login(ctx context.Context, details LoginDetails, opts LoginOptions) (*LoginResult, error)
	CheckBootVersion(ctx context.Context, gamePath string, forceBaseVersion bool) ([]patchlist.Entry, error)
	CheckGameVersion(ctx context.Context, gamePath string, oauth *OauthLoginResult, forceBaseVersion bool) (*GameVersionResult, error)
	GetGateStatus(ctx context.Context, language ClientLanguage) (*GateStatus, error)
}

// UniqueIDCache remembers the unique id of a previous network login.
type UniqueIDCache interface {
	TryGet(userName string) (uidcache.Entry, bool)
	Add(userName, uniqueID string, region, maxExpansion int)
}

var _ Launcher = (*Client)(nil)

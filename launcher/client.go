package launcher

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vuquang23/go-ffxiv/patchlist"
)

type Client struct {
	client    *http.Client
	cache     UniqueIDCache
	settings  Settings
	endpoints Endpoints
	parser    patchlist.Parser
	userAgent string
	now       func() time.Time
}

type Option func(*Client)

func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.client = h }
}

func WithPatchListParser(p patchlist.Parser) Option {
	return func(c *Client) { c.parser = p }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns the launcher for license. Each caller owns its launcher, there
// is no shared instance. cache may be nil to disable unique id caching.
func New(license License, cache UniqueIDCache, settings Settings, opts ...Option) (*Client, error) {
	var userAgent string
	switch license {
	case LicenseWindows:
		userAgent = fmt.Sprintf(userAgentTemplate, localComputerID())
	case LicenseMac:
		userAgent = macUserAgent
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedLicense, license)
	}

	if settings.FrontierURL == "" {
		settings.FrontierURL = DefaultFrontierURL
	}

	// Session cookies are not part of the protocol, so there is no jar.
	c := &Client{
		client:    &http.Client{Timeout: settings.Timeout},
		cache:     cache,
		settings:  settings,
		endpoints: DefaultEndpoints(),
		parser:    patchlist.MultipartParser{},
		userAgent: userAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) SetProxy(proxy string) error {
	proxyUrl, err := url.Parse(proxy)
	if err != nil {
		return err
	}
	c.client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyUrl)}
	return nil
}

// UserAgent is sent on login and frontier requests.
func (c *Client) UserAgent() string {
	return c.userAgent
}

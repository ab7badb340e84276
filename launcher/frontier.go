package launcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DownloadAsLauncher fetches a frontier resource with the headers of the
// official launcher.
func (c *Client) DownloadAsLauncher(ctx context.Context, reqURL string, language ClientLanguage, contentType string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		request.Header.Set("Accept", contentType)
	}
	request.Header.Set("Accept-Language", c.settings.AcceptLanguage)
	request.Header.Set("Origin", launcherOrigin)
	request.Header.Set("Referer", c.frontierReferer(language))
	request.Header.Set("Connection", "Keep-Alive")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		return nil, &InvalidResponseError{Msg: "frontier request", StatusCode: response.StatusCode, Document: string(b)}
	}
	return b, nil
}

func (c *Client) GetGateStatus(ctx context.Context, language ClientLanguage) (*GateStatus, error) {
	reqURL := c.endpoints.Frontier + fmt.Sprintf(gateStatus, language.LangCode(false), c.now().UnixMilli())
	b, err := c.DownloadAsLauncher(ctx, reqURL, language, "")
	if err != nil {
		return nil, fmt.Errorf("could not get gate status: %w", err)
	}

	var status GateStatus
	if err := json.Unmarshal(b, &status); err != nil {
		return nil, &InvalidResponseError{Msg: "could not get gate status", Document: string(b), Err: err}
	}
	return &status, nil
}

func (c *Client) GetLoginStatus(ctx context.Context) (bool, error) {
	reqURL := c.endpoints.Frontier + fmt.Sprintf(loginStatus, c.now().UnixMilli())
	b, err := c.DownloadAsLauncher(ctx, reqURL, ClientLanguageEnglish, "")
	if err != nil {
		return false, fmt.Errorf("could not get login status: %w", err)
	}

	var status GateStatus
	if err := json.Unmarshal(b, &status); err != nil {
		return false, &InvalidResponseError{Msg: "could not get login status", Document: string(b), Err: err}
	}
	return status.Status, nil
}

func (c *Client) GetHeadlines(ctx context.Context, language ClientLanguage, forceNA bool) (*Headlines, error) {
	reqURL := c.endpoints.Frontier + fmt.Sprintf(headlinePath, language.LangCode(forceNA), c.now().UnixMilli())
	b, err := c.DownloadAsLauncher(ctx, reqURL, language, "application/json, text/plain, */*")
	if err != nil {
		return nil, fmt.Errorf("could not get headlines: %w", err)
	}

	var headlines Headlines
	if err := json.Unmarshal(b, &headlines); err != nil {
		return nil, &InvalidResponseError{Msg: "could not get headlines", Document: string(b), Err: err}
	}
	return &headlines, nil
}

// GetGateStatusWithRetry retries transport failures. Protocol errors are
// returned at once.
func (c *Client) GetGateStatusWithRetry(ctx context.Context, language ClientLanguage, retryCount int, retryDelay time.Duration) (*GateStatus, error) {
	var res *GateStatus
	return res, withRetry(ctx, func() (err error) {
		res, err = c.GetGateStatus(ctx, language)
		return err
	}, retryCount, retryDelay)
}

func withRetry(ctx context.Context, f func() error, retryCount int, retryDelay time.Duration) error {
	if retryCount <= 0 {
		panic("retry count must be more than 0")
	}
	for i := 1; ; i++ {
		err := f()
		if err == nil {
			return nil
		}
		var invalid *InvalidResponseError
		if errors.As(err, &invalid) || i == retryCount {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}

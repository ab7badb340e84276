package netutil

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ToUrlValues converts a flat map into url.Values.
func ToUrlValues(m map[string]string) url.Values {
	values := make(url.Values, len(m))
	for k, v := range m {
		values.Set(k, v)
	}
	return values
}

// NewPostForm builds a form-encoded POST request.
func NewPostForm(ctx context.Context, urlStr string, data url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// SetHeaders copies every pair onto req, replacing existing values.
func SetHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// ReadBody drains and closes the response body.
func ReadBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

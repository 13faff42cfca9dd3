package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// clientUserAgent identifies the note client in server logs.
const clientUserAgent = "six-notes-client"

// HTTPClient is the resty client used to talk to the record service.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. timeout bounds every
// request; zero leaves it unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", clientUserAgent).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}

package pingclient

import (
	"errors"
	"fmt"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/opus-domini/fast-shot/constant/mime"
)

// NetworkError wraps a failed GET: transport failure or a non-success
// status. The sampler treats it as a skipped attempt.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

type Client struct {
	url        string
	httpClient fastshot.ClientHttpMethods
}

func NewClient(url string) *Client {
	httpClient := fastshot.NewClient(url).
		Header().AddAccept(mime.JSON).
		Build()
	return &Client{
		url:        url,
		httpClient: httpClient,
	}
}

// Ping issues one GET against the configured URL and reports only success
// or failure; the caller owns the timing.
func (c *Client) Ping() error {
	fastResp, err := c.httpClient.
		GET("").
		Send()
	if err != nil {
		return &NetworkError{URL: c.url, Err: err}
	}
	if fastResp.Status().IsError() {
		body, _ := fastResp.Body().AsString()
		return &NetworkError{URL: c.url, Err: errors.New(body)}
	}
	return nil
}

package lnbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// get issues a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// getWithParams issues a GET with pagination parameters appended as a query
// string.
func (c *Client) getWithParams(ctx context.Context, path string, params *ListParams, out any) error {
	if q := params.encode(); q != "" {
		path = path + "?" + q
	}

	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post issues a POST. body may be nil for endpoints that take no input, and
// out may be nil for endpoints whose response body is irrelevant.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// del issues a DELETE and discards any response body.
func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	log.WithFields(log.Fields{"method": method, "path": path}).Debug("lnbot api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, readErrorBody(resp.Body))
	}

	if out == nil {
		// 204 and other empty-body successes end here; a body, if any, is
		// deliberately not parsed.
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

// stream issues a GET with the SSE accept header and hands back the live
// response body. A non-2xx status is classified before any parsing begins.
// timeout, when non-zero, is forwarded to the server as whole seconds; the
// client places no deadline of its own on the stream.
func (c *Client) stream(ctx context.Context, path string, timeout time.Duration) (io.ReadCloser, error) {
	if timeout > 0 {
		path = fmt.Sprintf("%s?timeout=%d", path, int(timeout.Seconds()))
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	log.WithField("path", path).Debug("lnbot event stream open")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		body := readErrorBody(resp.Body)
		resp.Body.Close()

		return nil, newAPIError(resp.StatusCode, body)
	}

	return resp.Body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &DecodeError{Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

// readErrorBody captures an error response body verbatim. Read failures
// degrade to an empty body rather than masking the status error.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return ""
	}

	return string(body)
}

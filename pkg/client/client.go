// Package client implements the HTTP transport against a WebDAV-like
// server: plain HTTP, no auth, no retries, one synchronous request at a
// time.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/simpledav/simpledav/internal/daverr"
	"github.com/simpledav/simpledav/internal/davpath"
	"github.com/simpledav/simpledav/pkg/types"
)

// Client is the transport primitive for one server. Host and port are
// fixed at construction so independent configurations can coexist in the
// same process.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at host:port.
// The underlying http.Client carries no timeout: whole-file transfers may
// legitimately take long, and callers bound metadata calls with a context.
func New(host string, port int) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		httpClient: &http.Client{},
	}
}

func (c *Client) url(path davpath.Token) string {
	return c.baseURL + path.URLPath()
}

// do issues one request and maps connection-level failures to ErrTransport.
func (c *Client) do(ctx context.Context, method string, path davpath.Token, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", daverr.ErrTransport, method, path, err)
	}
	return resp, nil
}

// statusError reports an unexpected HTTP status, keeping a snippet of the
// response body for the error message.
func statusError(method string, path davpath.Token, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%w: %s %s: status %d", daverr.ErrTransport, method, path, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s %s: status %d: %s", daverr.ErrTransport, method, path, resp.StatusCode, msg)
}

// Propfind lists the resource at path with the given Depth (0 for the
// resource itself, 1 to include its children). The returned entries are in
// server order.
func (c *Client) Propfind(ctx context.Context, path davpath.Token, depth int) ([]types.DirectoryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, "PROPFIND", c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Depth", strconv.Itoa(depth))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: PROPFIND %s: %v", daverr.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMultiStatus:
		entries, err := parseMultistatus(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("PROPFIND %s: %w", path, err)
		}
		return entries, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", daverr.ErrNotFound, path)
	default:
		return nil, statusError("PROPFIND", path, resp)
	}
}

// Get streams the body of the file at path. The caller must close the
// returned reader.
func (c *Client) Get(ctx context.Context, path davpath.Token) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", daverr.ErrNotFound, path)
		}
		return nil, statusError("GET", path, resp)
	}
	return resp.Body, nil
}

// Put uploads the full body to path. A non-negative size is sent as the
// Content-Length so the server need not buffer chunked input.
func (c *Client) Put(ctx context.Context, path davpath.Token, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(path), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if size >= 0 {
		req.ContentLength = size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: PUT %s: %v", daverr.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", daverr.ErrParentNotFound, path)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", daverr.ErrPermission, path)
	default:
		return statusError("PUT", path, resp)
	}
}

// Mkcol creates a single directory at path.
func (c *Client) Mkcol(ctx context.Context, path davpath.Token) error {
	resp, err := c.do(ctx, "MKCOL", path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusOK:
		return nil
	case http.StatusMethodNotAllowed:
		// RFC 4918: MKCOL on an existing resource.
		return fmt.Errorf("%w: %s", daverr.ErrAlreadyExists, path)
	case http.StatusConflict:
		// RFC 4918: intermediate collection missing.
		return fmt.Errorf("%w: %s", daverr.ErrParentNotFound, path)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", daverr.ErrPermission, path)
	default:
		return statusError("MKCOL", path, resp)
	}
}

// Delete removes the file or (empty) directory at path.
func (c *Client) Delete(ctx context.Context, path davpath.Token) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", daverr.ErrNotFound, path)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", daverr.ErrPermission, path)
	default:
		return statusError("DELETE", path, resp)
	}
}

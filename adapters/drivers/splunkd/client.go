// Package splunkd implements the config service, secret store, and app
// registry ports against the Splunk management REST API.
package splunkd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spurintel/spursetup/domain"
)

// Client talks to a splunkd management endpoint (typically :8089).
type Client struct {
	baseURL  string
	app      string
	username string
	password string
	token    string
	httpc    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth sets username/password authentication.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithSessionToken sets bearer token authentication ("Authorization: Splunk <token>").
func WithSessionToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithProxy routes requests through the given proxy URL instead of the
// HTTP_PROXY / HTTPS_PROXY environment.
func WithProxy(proxyURL *url.URL) Option {
	return func(c *Client) {
		c.httpc.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
}

// New creates a client for the splunkd endpoint at baseURL. The app scopes
// servicesNS paths so written conf stanzas land in the add-on's namespace.
func New(baseURL, app string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid splunkd URL %s: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported splunkd URL scheme: %s", u.Scheme)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		app:     app,
		httpc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ports bundles the client as the full collaborator port set.
func (c *Client) Ports() *domain.Ports {
	return &domain.Ports{Config: c, Secrets: c, Apps: c.Apps()}
}

// apiEntry is one entry of a splunkd JSON response.
type apiEntry struct {
	Name    string         `json:"name"`
	Content map[string]any `json:"content"`
}

type apiResponse struct {
	Entry    []apiEntry `json:"entry"`
	Messages []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"messages"`
}

// statusError carries the HTTP status so callers can branch on 404.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("splunkd: HTTP %d: %s", e.status, e.msg)
	}
	return fmt.Sprintf("splunkd: HTTP %d", e.status)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusNotFound
}

// servicesNS returns an app-scoped endpoint path.
func (c *Client) servicesNS(parts ...string) string {
	segs := append([]string{"servicesNS", "nobody", c.app}, parts...)
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segs, "/")
}

// services returns a global endpoint path.
func (c *Client) services(parts ...string) string {
	segs := append([]string{"services"}, parts...)
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segs, "/")
}

// do issues one request with output_mode=json and decodes the response.
// A nil form means GET, otherwise a form-encoded POST.
func (c *Client) do(ctx context.Context, path string, form url.Values) (*apiResponse, error) {
	q := url.Values{"output_mode": {"json"}, "count": {"0"}}
	full := c.baseURL + path + "?" + q.Encode()

	var req *http.Request
	var err error
	if form == nil {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, full, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Splunk "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var parsed apiResponse
	if len(body) > 0 {
		// Reload and some create endpoints answer with an empty body.
		if jerr := json.Unmarshal(body, &parsed); jerr != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("splunkd: decode response for %s: %w", path, jerr)
		}
	}
	if resp.StatusCode >= 300 {
		msg := ""
		for _, m := range parsed.Messages {
			if m.Type == "ERROR" || m.Type == "FATAL" {
				msg = m.Text
				break
			}
		}
		return nil, &statusError{status: resp.StatusCode, msg: msg}
	}
	return &parsed, nil
}

// contentString renders a content value the way conf files store it.
func contentString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

package vcenter

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	deployerrors "github.com/ksyq12/certbot-deployer-vsphere/internal/errors"
	"github.com/ksyq12/certbot-deployer-vsphere/internal/logger"
)

// REST endpoints relative to the server base URL
const (
	SessionPath = "/api/session"
	TLSPath     = "/api/vcenter/certificate-management/vcenter/tls"
)

// SessionHeader carries the token returned by Login
const SessionHeader = "vmware-api-session-id"

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 64 << 10

// TLSSpec replaces the Machine SSL certificate
type TLSSpec struct {
	Cert     string `json:"cert"`
	Key      string `json:"key"`
	RootCert string `json:"root_cert"`
}

// Client is an authenticated vCenter API session
type Client struct {
	base      *url.URL
	http      *http.Client
	sessionID string
}

// NewHTTPClient returns a fresh client with its own transport.
// Verification is disabled only when tlsNoVerify is set.
func NewHTTPClient(tlsNoVerify bool) *http.Client {
	client := cleanhttp.DefaultClient()
	transport := client.Transport.(*http.Transport)
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	transport.TLSClientConfig.InsecureSkipVerify = tlsNoVerify
	return client
}

// InsecureSkipVerify reports whether a client built by NewHTTPClient skips verification
func InsecureSkipVerify(client *http.Client) bool {
	transport, ok := client.Transport.(*http.Transport)
	if !ok || transport.TLSClientConfig == nil {
		return false
	}
	return transport.TLSClientConfig.InsecureSkipVerify
}

// BaseURL turns host, host:port or an https URL into the API base URL
func BaseURL(server string) (*url.URL, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, deployerrors.Validation("vcenter server cannot be empty")
	}
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}

	u, err := url.Parse(server)
	if err != nil {
		return nil, deployerrors.Wrap(deployerrors.ErrCodeValidation, "invalid vcenter server", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, deployerrors.Validation(fmt.Sprintf("unsupported scheme %q for vcenter server", u.Scheme))
	}
	if u.Host == "" {
		return nil, deployerrors.Validation(fmt.Sprintf("vcenter server %q has no host", server))
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// Login opens a session with HTTP basic auth
func Login(ctx context.Context, server, username, password string, httpClient *http.Client) (*Client, error) {
	base, err := BaseURL(server)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(false)
	}

	c := &Client{base: base, http: httpClient}

	req, err := c.newRequest(ctx, http.MethodPost, SessionPath, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)

	logger.DebugFields("Creating vCenter session", logger.Fields{
		"host": base.Host,
		"user": username,
	})

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, deployerrors.WrapTarget(deployerrors.ErrCodeConnection, base.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, deployerrors.WrapTarget(deployerrors.ErrCodeAuth, base.Host, newAPIError(resp))
	}
	if !isSuccess(resp.StatusCode) {
		return nil, deployerrors.WrapTarget(deployerrors.ErrCodeAPI, base.Host, newAPIError(resp))
	}

	var token string
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, deployerrors.WrapTarget(deployerrors.ErrCodeAPI, base.Host, fmt.Errorf("failed to parse session response: %w", err))
	}
	if token == "" {
		return nil, deployerrors.WrapTarget(deployerrors.ErrCodeAPI, base.Host, fmt.Errorf("empty session token"))
	}
	c.sessionID = token

	logger.Debug("Authenticated to API")
	return c, nil
}

// Host returns the vCenter host:port this client talks to
func (c *Client) Host() string {
	return c.base.Host
}

// SetTLS replaces the Machine SSL certificate
func (c *Client) SetTLS(ctx context.Context, spec TLSSpec) error {
	body, err := json.Marshal(spec)
	if err != nil {
		return deployerrors.Wrap(deployerrors.ErrCodeInternal, "failed to encode tls spec", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, TLSPath, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return deployerrors.WrapTarget(deployerrors.ErrCodeConnection, c.base.Host, err)
	}
	defer resp.Body.Close()

	switch {
	case isSuccess(resp.StatusCode):
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return deployerrors.WrapTarget(deployerrors.ErrCodeAuth, c.base.Host, newAPIError(resp))
	default:
		return &deployerrors.DeployError{
			Code:    deployerrors.ErrCodeAPI,
			Message: "failed to replace certificate",
			Target:  c.base.Host,
			Err:     newAPIError(resp),
		}
	}
}

// Logout deletes the session
func (c *Client) Logout(ctx context.Context) error {
	if c.sessionID == "" {
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodDelete, SessionPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return deployerrors.WrapTarget(deployerrors.ErrCodeConnection, c.base.Host, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return deployerrors.WrapTarget(deployerrors.ErrCodeAPI, c.base.Host, newAPIError(resp))
	}
	c.sessionID = ""
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, deployerrors.Wrap(deployerrors.ErrCodeInternal, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionID != "" {
		req.Header.Set(SessionHeader, c.sessionID)
	}
	return req, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

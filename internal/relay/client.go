package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"parley/internal/domain"
)

// ErrUnknownUser is returned by LookupKey when the directory has no entry
// for the username.
var ErrUnknownUser = errors.New("unknown user")

// Client talks JSON over HTTP to a relay server.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the relay at base.
func NewClient(base string) *Client {
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: http.DefaultClient}
}

// RegisterKey publishes the profile to the directory.
func (c *Client) RegisterKey(ctx context.Context, profile domain.Profile) error {
	return c.post(ctx, "/v1/register", profile, nil)
}

// LookupKey fetches the directory entry for username.
func (c *Client) LookupKey(
	ctx context.Context,
	username domain.Username,
) (domain.Profile, error) {
	var out domain.Profile
	err := c.getJSON(ctx, "/v1/keys/"+url.PathEscape(string(username)), &out)
	var he *httpError
	if errors.As(err, &he) && he.status == http.StatusNotFound {
		return domain.Profile{}, ErrUnknownUser
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return out, nil
}

// PushEnvelope queues env in the recipient's mailbox.
func (c *Client) PushEnvelope(ctx context.Context, env domain.Envelope) error {
	return c.post(ctx, "/v1/messages/"+url.PathEscape(string(env.To)), env, nil)
}

// FetchEnvelopes returns up to max queued envelopes for username without
// removing them; call AckEnvelopes to drop handled ones.
func (c *Client) FetchEnvelopes(
	ctx context.Context,
	username domain.Username,
	max int,
) ([]domain.Envelope, error) {
	path := "/v1/messages/" + url.PathEscape(string(username))
	if max > 0 {
		path += "?max=" + strconv.Itoa(max)
	}
	var envs []domain.Envelope
	if err := c.getJSON(ctx, path, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// AckEnvelopes removes the given envelopes from username's mailbox.
func (c *Client) AckEnvelopes(
	ctx context.Context,
	username domain.Username,
	ids []domain.MessageID,
) error {
	path := "/v1/messages/" + url.PathEscape(string(username)) + "/ack"
	return c.post(ctx, path, ackRequest{IDs: ids}, nil)
}

// ackRequest is the body of POST /v1/messages/{username}/ack.
type ackRequest struct {
	IDs []domain.MessageID `json:"ids"`
}

// httpError carries a non-2xx response status.
type httpError struct {
	method string
	path   string
	status int
	text   string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("relay %s %s: %s", e.method, e.path, e.text)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &httpError{
			method: req.Method,
			path:   req.URL.Path,
			status: resp.StatusCode,
			text:   resp.Status,
		}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Compile-time assertion that Client implements domain.RelayClient.
var _ domain.RelayClient = (*Client)(nil)

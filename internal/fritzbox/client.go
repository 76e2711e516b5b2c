// Package fritzbox talks to a FRITZ!Box router's WANIPConnection control
// endpoint over UPnP/SOAP: it reads the public IP address and connection
// status and forces WAN reconnections.
package fritzbox

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/nimda/fritz-reconnect/internal/soap"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the per-request timeout used unless WithTimeout is given.
const DefaultTimeout = 10 * time.Second

// Client issues WANIPConnection control actions against a single router.
// Immutable after construction; safe to discard after the session.
type Client struct {
	baseURL    string
	service    ServiceDescriptor
	httpClient *http.Client
	clock      clock.Clock
}

// NewClient creates a client for the router at baseURL, e.g.
// "http://fritz.box:49000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		service:    WANIPConnection1(),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		clock:      clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the router endpoint this client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call posts the SOAP envelope for action to the control endpoint and
// returns the raw response body.
func (c *Client) call(ctx context.Context, action string) ([]byte, error) {
	soapReq := soap.NewRequest(c.service.ServiceURN, action)
	url := c.baseURL + c.service.ControlPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(soapReq.Body))
	if err != nil {
		return nil, &RequestError{Kind: KindOther, Op: action, Err: err}
	}
	for key, value := range soapReq.Headers {
		req.Header.Set(key, value)
	}

	zlog.Trace().Str("url", url).Str("action", action).Msg("Sending SOAP request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		zlog.Trace().Err(err).Str("action", action).Msg("SOAP request failed")
		return nil, classifyTransport(action, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zlog.Trace().Err(err).Msg("Error closing SOAP response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zlog.Trace().Int("status_code", resp.StatusCode).Str("action", action).Msg("SOAP request returned non-2xx status")
		return nil, &RequestError{Kind: KindHTTP, Op: action, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(action, err)
	}

	zlog.Trace().Int("bytes", len(body)).Str("action", action).Msg("Received SOAP response")
	return body, nil
}

// GetPublicIP returns the router's current public IP address. A well-formed
// response without the expected field is not an error: found is false and ip
// is empty.
func (c *Client) GetPublicIP(ctx context.Context) (ip string, found bool, err error) {
	action := c.service.ActionGetExternalIPAddress
	body, err := c.call(ctx, action)
	if err != nil {
		return "", false, err
	}

	ip, found, perr := elementText(body, "NewExternalIPAddress")
	if perr != nil {
		return "", false, &RequestError{Kind: KindOther, Op: action, Err: perr}
	}
	if !found {
		zlog.Warn().Msg("External IP address not found in response")
		return "", false, nil
	}
	return ip, true, nil
}

// GetConnectionStatus returns the router's current WAN connection status. A
// response without the status field decodes as StateOther with an empty raw
// value, matching the leniency of GetPublicIP.
func (c *Client) GetConnectionStatus(ctx context.Context) (ConnectionStatus, error) {
	action := c.service.ActionGetStatusInfo
	body, err := c.call(ctx, action)
	if err != nil {
		return ConnectionStatus{}, err
	}

	raw, found, perr := elementText(body, "NewConnectionStatus")
	if perr != nil {
		return ConnectionStatus{}, &RequestError{Kind: KindOther, Op: action, Err: perr}
	}
	if !found {
		zlog.Warn().Msg("Connection status not found in response")
		return ConnectionStatus{}, nil
	}
	return ParseConnectionStatus(raw), nil
}

// ForceReconnect tears down the current WAN session. The router reconnects
// on its own afterwards, usually with a new ISP-assigned address. Only the
// HTTP-level outcome matters; the response body is not parsed.
func (c *Client) ForceReconnect(ctx context.Context) error {
	_, err := c.call(ctx, c.service.ActionForceTermination)
	return err
}

// elementText returns the text content of the first element with the given
// unqualified local name, ignoring namespace prefixes. Routers in the wild
// answer with declared encodings other than UTF-8, hence the charset reader.
func elementText(body []byte, local string) (string, bool, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != local {
			continue
		}
		var text string
		if err := dec.DecodeElement(&text, &start); err != nil {
			return "", false, err
		}
		return text, true, nil
	}
}

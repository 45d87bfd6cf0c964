package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the WhatsApp gateway sidecar over HTTP. The gateway owns
// the actual WhatsApp Web session; this client only drives it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Connect asks the gateway to start a session. Pairing completes out of band
// via the QR code.
func (c *Client) Connect(ctx context.Context) error {
	return c.post(ctx, "/session/connect", nil, nil)
}

// Disconnect tears the session down.
func (c *Client) Disconnect(ctx context.Context) error {
	return c.post(ctx, "/session/disconnect", nil, nil)
}

// Status reports the current session state.
func (c *Client) Status(ctx context.Context) (*SessionStatus, error) {
	var status SessionStatus
	if err := c.get(ctx, "/session/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// QR fetches the pairing QR code. Only available while the session is in the
// pairing state.
func (c *Client) QR(ctx context.Context) (*QRCode, error) {
	var qr QRCode
	if err := c.get(ctx, "/session/qr", &qr); err != nil {
		return nil, err
	}
	return &qr, nil
}

// SendMessage delivers one text message to a normalized phone number.
func (c *Client) SendMessage(ctx context.Context, phone, message string) error {
	body := sendMessageRequest{Phone: phone, Message: message}
	if err := c.post(ctx, "/messages", body, nil); err != nil {
		c.log.Error("WhatsApp send to %s failed: %v", phone, err)
		return err
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		// Fall through to decoding.
	case http.StatusConflict:
		return ErrNotConnected
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

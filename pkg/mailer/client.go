package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blu-networking/blu-backend/pkg/config"
	pkgerrors "github.com/blu-networking/blu-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://api.sendgrid.com/v3"
	errorBodyReadLimit   int64 = 1024
)

// Message is a single outbound email.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Client wraps the SendGrid mail send API. A client without an API key is
// valid and reports every send as skipped, so environments without
// credentials keep working.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	fromEmail  string
	fromName   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured SendGrid base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the SendGrid client from configuration.
func NewClient(cfg config.SendGridConfig, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		fromEmail:  strings.TrimSpace(cfg.From),
		fromName:   strings.TrimSpace(cfg.FromName),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client
}

// Enabled reports whether the client holds credentials to actually send.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Send delivers the message through SendGrid. It returns false without error
// when the client has no API key configured.
func (c *Client) Send(ctx context.Context, msg Message) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	if strings.TrimSpace(msg.ToEmail) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "recipient email is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "email subject is required")
	}

	payload, err := json.Marshal(c.buildPayload(msg))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal mail send request")
	}

	url := fmt.Sprintf("%s/mail/send", strings.TrimRight(c.baseURL, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build mail send request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute mail send request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msgBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msgBody))), "mail send request failed")
	}

	return true, nil
}

type sendPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []address `json:"to"`
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c *Client) buildPayload(msg Message) sendPayload {
	// SendGrid requires text/plain before text/html
	contents := make([]content, 0, 2)
	if msg.TextBody != "" {
		contents = append(contents, content{Type: "text/plain", Value: msg.TextBody})
	}
	if msg.HTMLBody != "" {
		contents = append(contents, content{Type: "text/html", Value: msg.HTMLBody})
	}
	if len(contents) == 0 {
		contents = append(contents, content{Type: "text/plain", Value: ""})
	}

	return sendPayload{
		Personalizations: []personalization{{
			To: []address{{Email: msg.ToEmail, Name: msg.ToName}},
		}},
		From:    address{Email: c.fromEmail, Name: c.fromName},
		Subject: msg.Subject,
		Content: contents,
	}
}

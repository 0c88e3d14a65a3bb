// Package botapi provides a telegram.API implementation backed by the HTTP
// Bot API at api.telegram.org.
package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"essaybot/pkg/metrics"
	"essaybot/pkg/serrors"
	"essaybot/pkg/telegram"
)

// Client talks to the Telegram Bot API and fulfills the telegram.API
// interface. It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client // httpClient performs HTTP requests to the Bot API
	baseURL     string       // baseURL is the API root, e.g. https://api.telegram.org
	token       string       // token is the bot token issued by BotFather
	pollTimeout int          // pollTimeout is the getUpdates long-poll timeout in seconds
}

// Options configure a Client.
type Options struct {
	// BaseURL is the API root. Defaults to the public Bot API when empty.
	BaseURL string
	// Token is the bot token.
	Token string
	// PollTimeout is the long-poll timeout in seconds passed to getUpdates.
	PollTimeout int
}

// New constructs a Client that uses the provided http.Client and options to
// interact with the Bot API. The http.Client's timeout must exceed the poll
// timeout or every getUpdates call will be cut short.
func New(httpClient *http.Client, opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       opts.Token,
		pollTimeout: opts.PollTimeout,
	}
}

// apiResponse is the envelope every Bot API method returns.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

// call invokes a Bot API method with a JSON body and decodes the envelope.
// A failed envelope is mapped to an error; 429 responses become rate-limit
// semantic errors carrying the advised retry delay.
func (c *Client) call(ctx context.Context, method string, body any, result any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.baseURL+"/bot"+c.token+"/"+method,
		bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.TelegramRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	if !envelope.OK {
		if envelope.ErrorCode == http.StatusTooManyRequests {
			retryAfter := 0
			if envelope.Parameters != nil {
				retryAfter = envelope.Parameters.RetryAfter
			}

			return serrors.With(serrors.ErrRateLimited, "rate limited, retry after %ds", retryAfter)
		}

		return fmt.Errorf("%s failed: %s (code %d)", method, envelope.Description, envelope.ErrorCode)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("could not decode result: %w", err)
		}
	}

	return nil
}

// GetUpdates long-polls for new updates starting at offset. Only message
// updates are requested; everything else is filtered server side.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error) {
	req := struct {
		Offset         int64    `json:"offset,omitempty"`
		Timeout        int      `json:"timeout,omitempty"`
		AllowedUpdates []string `json:"allowed_updates,omitempty"`
	}{
		Offset:         offset,
		Timeout:        c.pollTimeout,
		AllowedUpdates: []string{"message"},
	}

	var updates []telegram.Update
	if err := c.call(ctx, "getUpdates", req, &updates); err != nil {
		return nil, err
	}

	return updates, nil
}

// SendMessage sends a text reply to the chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text, parseMode string) error {
	req := struct {
		ChatID    int64  `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode,omitempty"`
	}{ChatID: chatID, Text: text, ParseMode: parseMode}

	return c.call(ctx, "sendMessage", req, nil)
}

// SendChatAction shows a transient activity indicator in the chat.
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action string) error {
	req := struct {
		ChatID int64  `json:"chat_id"`
		Action string `json:"action"`
	}{ChatID: chatID, Action: action}

	return c.call(ctx, "sendChatAction", req, nil)
}

// GetFile resolves a file ID into a download handle.
func (c *Client) GetFile(ctx context.Context, fileID string) (*telegram.File, error) {
	req := struct {
		FileID string `json:"file_id"`
	}{FileID: fileID}

	var file telegram.File
	if err := c.call(ctx, "getFile", req, &file); err != nil {
		return nil, err
	}

	return &file, nil
}

// Download fetches the raw bytes of a file from the file endpoint using the
// path obtained from GetFile.
func (c *Client) Download(ctx context.Context, filePath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet,
		c.baseURL+"/file/bot"+c.token+"/"+filePath,
		nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.TelegramRequestDuration.WithLabelValues("download").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, serrors.With(serrors.ErrNotFound, "file not found: %s", filePath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	return b, nil
}

// Ensure Client conforms to the telegram.API interface at compile time.
var _ telegram.API = (*Client)(nil)

// Package printer forwards rendered ticket PDFs to the network print server.
package printer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client posts PDF bytes to the print server. A nil Client (or one built
// without configuration) is a silent no-op, matching the optional nature of
// print forwarding.
type Client struct {
	serverURL string
	token     string
	http      *http.Client
	logger    *zap.Logger
}

// New creates a print client. Returns nil when serverURL or token is empty,
// which callers treat as forwarding disabled.
func New(serverURL, token string, logger *zap.Logger) *Client {
	if strings.TrimSpace(serverURL) == "" || strings.TrimSpace(token) == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		token:     token,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// SendPDF posts the document to the print server. Any 2xx status is success;
// other statuses return the response body as diagnostic text.
func (c *Client) SendPDF(ctx context.Context, pdf []byte) error {
	if c == nil {
		return nil
	}
	url := c.serverURL + "/print/pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(pdf))
	if err != nil {
		return fmt.Errorf("print request: %w", err)
	}
	req.Header.Set("X-Token", c.token)
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("print server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("ticket pdf forwarded to print server", zap.Int("bytes", len(pdf)))
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("print server HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

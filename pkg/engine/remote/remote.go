// Package remote delegates upscaling to an external Real-ESRGAN serving
// endpoint over HTTP. The server takes a PNG body on POST /upscale and
// answers with the 4x-upscaled image bytes.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/menta2k/image-upscaler/pkg/imgio"
)

const defaultTimeout = 5 * time.Minute

// Client is an Upscaler backed by a remote serving process.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given server URL.
func NewClient(serverURL string) (*Client, error) {
	if serverURL == "" {
		serverURL = "http://localhost:8090"
	}

	return &Client{
		baseURL: strings.TrimSuffix(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// Upscale4x sends img to the serving endpoint and decodes the response.
// Inference on CPU can take minutes; callers bound it with ctx if needed.
func (c *Client) Upscale4x(ctx context.Context, img image.Image) (image.Image, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	var body bytes.Buffer
	if err := imgio.EncodePNG(&body, img); err != nil {
		return nil, fmt.Errorf("failed to encode request image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upscale", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(data))
	}

	out, err := imgio.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode upscaled image: %w", err)
	}
	return out, nil
}

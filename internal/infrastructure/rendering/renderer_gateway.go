package rendering

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"tovyalla_billing/internal/usecase/interfaces"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

var ErrMissingRendererURL = errors.New("missing RENDERER_URL")
var ErrRendererGatewayNotConfigured = errors.New("document renderer gateway not configured")

// RendererGateway posts the render payload to the external document renderer
// and returns the URL of the produced file.
//
// Env vars:
//   - RENDERER_URL (required outside mock mode)
//   - DOCUMENT_RENDERER_MOCK (returns a deterministic fake URL, no HTTP)

type RendererGateway struct {
	url      string
	http     *retryablehttp.Client
	mockMode bool
}

var _ interfaces.IDocumentRenderer = (*RendererGateway)(nil)

func NewRendererGateway(url string) (*RendererGateway, error) {
	if isRendererMockEnabled() {
		log.Printf("[document][renderer] mock mode enabled")
		return &RendererGateway{mockMode: true}, nil
	}

	url = strings.TrimSpace(url)
	if url == "" {
		log.Printf("[document][renderer] missing RENDERER_URL")
		return nil, ErrMissingRendererURL
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 2
	retryClient.HTTPClient.Timeout = 60 * time.Second

	return &RendererGateway{url: url, http: retryClient}, nil
}

func (g *RendererGateway) RenderDocument(ctx context.Context, payload json.RawMessage) (string, error) {
	if g != nil && g.mockMode {
		id := time.Now().UTC().UnixNano()
		url := fmt.Sprintf("https://renderer.mock/documents/%d.pdf", id)
		log.Printf("[document][renderer] mock render success payload_len=%d file_url=%s", len(payload), url)
		return url, nil
	}

	if g == nil || g.http == nil {
		log.Printf("[document][renderer] gateway not configured")
		return "", ErrRendererGatewayNotConfigured
	}
	log.Printf("[document][renderer] render start payload_len=%d", len(payload))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		log.Printf("[document][renderer] render failed err=%v", err)
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[document][renderer] render failed status=%d", resp.StatusCode)
		return "", fmt.Errorf("renderer returned status %d", resp.StatusCode)
	}

	fileURL := gjson.GetBytes(body, "file_url").String()
	if fileURL == "" {
		log.Printf("[document][renderer] response missing file_url body_len=%d", len(body))
		return "", errors.New("renderer response missing file_url")
	}
	log.Printf("[document][renderer] render success file_url=%s", fileURL)
	return fileURL, nil
}

func isRendererMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DOCUMENT_RENDERER_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

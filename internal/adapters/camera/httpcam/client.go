package httpcam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/petwatch/internal/domain"
	"github.com/bnema/petwatch/internal/ports"
)

const (
	defaultTimeout     = 10 * time.Second
	maxSnapshotBytes   = 8 << 20
	defaultContentType = "image/jpeg"
)

var ErrEmptySnapshot = errors.New("camera returned an empty snapshot")

// Client fetches the latest frame from a camera snapshot endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

var _ ports.SnapshotSource = (*Client)(nil)

func NewClient(endpoint string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{endpoint: endpoint, client: client}
}

func (c *Client) Capture(ctx context.Context) (domain.Snapshot, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("User-Agent", "petwatch/camera")

	response, err := c.client.Do(request)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxSnapshotBytes))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return domain.Snapshot{}, fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(body) == 0 {
		return domain.Snapshot{}, ErrEmptySnapshot
	}

	contentType := response.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return domain.Snapshot{Data: body, ContentType: contentType}, nil
}

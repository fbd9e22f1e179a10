package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/petwatch/internal/domain"
	"github.com/bnema/petwatch/internal/ports"
)

const (
	DefaultBaseURL = "https://api.pushover.net"

	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 1 << 16
)

// Client dispatches alerts through the Pushover message API
// (token/user-key auth, form-encoded POST).
type Client struct {
	token   string
	userKey string
	baseURL string
	client  *http.Client
}

var _ ports.Notifier = (*Client)(nil)

func NewClient(token, userKey, baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		token:   token,
		userKey: userKey,
		baseURL: baseURL,
		client:  client,
	}
}

func (c *Client) Notify(ctx context.Context, alert domain.Alert) error {
	form := url.Values{}
	form.Set("token", c.token)
	form.Set("user", c.userKey)
	form.Set("title", alertTitle(alert.Kind))
	form.Set("message", alert.Message)
	form.Set("priority", strconv.Itoa(alertPriority(alert.Kind)))
	if !alert.SentAt.IsZero() {
		form.Set("timestamp", strconv.FormatInt(alert.SentAt.Unix(), 10))
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + "/1/messages.json"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("User-Agent", "petwatch/notify")

	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var payload messageResponse
	if decodeErr := json.Unmarshal(body, &payload); decodeErr == nil && payload.Status != 1 && len(payload.Errors) > 0 {
		return fmt.Errorf("pushover rejected message: %s", strings.Join(payload.Errors, "; "))
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

func alertTitle(kind domain.AlertKind) string {
	switch kind {
	case domain.AlertDanger:
		return "petwatch: safety alert"
	case domain.AlertObstruction:
		return "petwatch: cleanliness notice"
	default:
		return "petwatch alert"
	}
}

func alertPriority(kind domain.AlertKind) int {
	if kind == domain.AlertDanger {
		return 1
	}

	return 0
}

type messageResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors"`
}

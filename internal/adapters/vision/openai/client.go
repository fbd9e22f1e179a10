package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/petwatch/internal/domain"
	"github.com/bnema/petwatch/internal/ports"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"

	defaultMaxTokens = 500
	maxResponseBytes = 1 << 20
)

const analysisPrompt = `Analyze this indoor pet camera image and respond with a JSON object describing:

1. Whether the pet is visible, and where it is.
2. The pet's activity or behavior.
3. Any safety concerns or signs of distress, including items within the pet's reach that should not normally be there.
4. Cleanliness or obstruction issues (messes, spilled food or water, scattered objects). Glasses of water are okay.
5. An overall assessment.

Respond with exactly these fields: pet_present (boolean), location, activity, safety_concerns, cleanliness_issues, overall_assessment.`

type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	PetDescription string
	MaxTokens      int
}

// Client calls an OpenAI-compatible chat-completions endpoint with a
// single image and the fixed analysis prompt.
type Client struct {
	config Config
	client *http.Client
}

var _ ports.Analyzer = (*Client)(nil)

func NewClient(config Config, client *http.Client) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{config: config, client: client}
}

func (c *Client) Analyze(ctx context.Context, snapshot domain.Snapshot) (domain.Observation, error) {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return domain.Observation{}, domain.ErrMissingAPIKey
	}

	content, err := c.complete(ctx, snapshot)
	if err != nil {
		return domain.Observation{}, err
	}

	payload, err := decodeObservationPayload(content)
	if err != nil {
		return domain.Observation{}, err
	}

	observation := payload.toObservation()
	observation.Model = c.config.Model

	return observation, nil
}

func (c *Client) complete(ctx context.Context, snapshot domain.Snapshot) (string, error) {
	body, err := json.Marshal(c.buildRequest(snapshot))
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "petwatch/vision")

	response, err := c.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(responseBody)))
	}

	var completion chatResponse
	if err := json.Unmarshal(responseBody, &completion); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion has no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

func (c *Client) buildRequest(snapshot domain.Snapshot) chatRequest {
	contentType := snapshot.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(snapshot.Data))

	prompt := analysisPrompt
	if description := strings.TrimSpace(c.config.PetDescription); description != "" {
		prompt += fmt.Sprintf("\n\nThe pet is %s. Do not confuse plush toys with the pet.", description)
	}

	return chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens:      c.config.MaxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

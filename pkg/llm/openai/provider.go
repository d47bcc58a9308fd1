package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hustle-mentor-be/pkg/llm"
)

// FallbackText is returned when the Responses API yields no usable output in
// either of its shapes.
const FallbackText = "No response generated."

type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Ensure OpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type responsesRequest struct {
	Model           string           `json:"model"`
	Input           []inputMessage   `json:"input"`
	MaxOutputTokens int              `json:"max_output_tokens,omitempty"`
	Temperature     float64          `json:"temperature"`
}

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responsesReply tolerates both shapes the Responses API is known to return:
// a flattened output_text field, or a sequence of structured output items.
type responsesReply struct {
	OutputText string       `json:"output_text"`
	Output     []outputItem `json:"output"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type outputItem struct {
	Content []contentPart `json:"content"`
}

// contentPart keeps Text untyped so a non-string payload is skipped rather
// than failing the whole decode.
type contentPart struct {
	Text any `json:"text"`
}

// --- Interface Implementation ---

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7, // Default
		Model:       p.model,
	}
	for _, opt := range opts {
		opt(options)
	}

	input := make([]inputMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		input[i] = inputMessage{Role: role, Content: msg.Content}
	}

	reqPayload := responsesRequest{
		Model:       options.Model,
		Input:       input,
		Temperature: options.Temperature,
	}
	if options.MaxTokens > 0 {
		reqPayload.MaxOutputTokens = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := p.baseURL + "/responses"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var reply responsesReply
	if err := json.Unmarshal(bodyBytes, &reply); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if reply.Error != nil {
		return "", fmt.Errorf("openai error: %s", reply.Error.Message)
	}

	return normalize(reply), nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// normalize prefers the consolidated output_text field; otherwise it folds
// the segmented output items, taking the first textual payload of each,
// joining the non-empty ones with newlines. An empty result becomes a fixed
// literal so callers always get usable text.
func normalize(reply responsesReply) string {
	text := reply.OutputText
	if text == "" && len(reply.Output) > 0 {
		parts := make([]string, 0, len(reply.Output))
		for _, item := range reply.Output {
			for _, part := range item.Content {
				s, ok := part.Text.(string)
				if !ok {
					continue
				}
				if s != "" {
					parts = append(parts, s)
				}
				break
			}
		}
		if joined := strings.TrimSpace(strings.Join(parts, "\n")); joined != "" {
			text = joined
		}
	}
	if text == "" {
		text = FallbackText
	}
	return text
}

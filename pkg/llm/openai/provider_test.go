package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hustle-mentor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIProvider("test-key", srv.URL, "gpt-4o-mini")
}

func TestChatFlatOutputText(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.Equal(t, 0.5, req["temperature"])
		assert.Equal(t, float64(400), req["max_output_tokens"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"output_text": "Start with one paying customer.",
		})
	})

	got, err := p.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(400),
	)
	require.NoError(t, err)
	assert.Equal(t, "Start with one paying customer.", got)
}

func TestChatSegmentedOutput(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{"content": []map[string]interface{}{{"text": "First item"}}},
				{"content": []map[string]interface{}{{"text": 42}, {"text": "first string part"}}},
				{"content": []map[string]interface{}{{"text": "Second item"}}},
			},
		})
	})

	got, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "First item\nfirst string part\nSecond item", got)
}

func TestChatEmptyReplyFallsBack(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{"content": []map[string]interface{}{{"text": ""}}},
			},
		})
	})

	got, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, FallbackText, got)
}

func TestChatModelRoleMappedToAssistant(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []inputMessage `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)
		assert.Equal(t, "assistant", req.Input[0].Role)
		assert.Equal(t, "user", req.Input[1].Role)

		json.NewEncoder(w).Encode(map[string]interface{}{"output_text": "ok"})
	})

	_, err := p.Chat(context.Background(), []llm.Message{
		{Role: "model", Content: "earlier reply"},
		{Role: "user", Content: "next question"},
	})
	require.NoError(t, err)
}

func TestChatUpstreamError(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestChatErrorField(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	})

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestNormalizePrefersOutputText(t *testing.T) {
	reply := responsesReply{
		OutputText: "flat wins",
		Output: []outputItem{
			{Content: []contentPart{{Text: "segmented loses"}}},
		},
	}
	assert.Equal(t, "flat wins", normalize(reply))
}

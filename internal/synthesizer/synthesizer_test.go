package synthesizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeCompleter struct {
	out    string
	err    error
	prompt string
}

func (f *fakeCompleter) complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.out, f.err
}

func (f *fakeCompleter) name() string { return "fake" }

func newTestSynthesizer(backend completer) *implSynthesizer {
	return &implSynthesizer{
		backend:     backend,
		model:       "test-model",
		maxTokens:   1000,
		temperature: 0.7,
		logger:      logger.NewNop(),
	}
}

func TestBuildPrompt(t *testing.T) {
	got := buildPrompt("we talk about go")

	assert.True(t, strings.HasPrefix(got, "Write a high-quality, well-structured, informative blog post based on this video transcript."))
	assert.Contains(t, got, "The content should be engaging and not merely repeat the transcript.\n\nTranscript:\nwe talk about go\n\nBlog Post:")
	assert.True(t, strings.HasSuffix(got, "Blog Post:"))
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		err     error
		want    string
		wantErr error
	}{
		{name: "trims completion", out: "\n  # Title\n\nBody  \n", want: "# Title\n\nBody"},
		{name: "empty completion", out: "   \n", wantErr: ErrEmptyOutput},
		{name: "backend error", err: errors.New("quota exceeded")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeCompleter{out: tt.out, err: tt.err}
			s := newTestSynthesizer(backend)

			got, err := s.Synthesize(context.Background(), "transcript text")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.err != nil:
				assert.ErrorIs(t, err, tt.err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Contains(t, backend.prompt, "Transcript:\ntranscript text\n")
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.SynthesizerConfig{Provider: "cohere"}, logger.NewNop())
	assert.Error(t, err)
}

func TestCandidateText(t *testing.T) {
	assert.Equal(t, "", candidateText(nil))
	assert.Equal(t, "", candidateText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "Hello, "}, {Text: "world"}}}},
		},
	}
	assert.Equal(t, "Hello, world", candidateText(resp))
}

func TestOpenAIBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])
		assert.EqualValues(t, 1000, req["max_tokens"])
		assert.InDelta(t, 0.7, req["temperature"], 0.0001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Generated post  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	s, err := New(context.Background(), config.SynthesizerConfig{
		Provider:    config.ProviderOpenAI,
		Model:       "gpt-4o-mini",
		MaxTokens:   1000,
		Temperature: genai.Ptr[float32](0.7),
		OpenAI:      config.OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"},
	}, logger.NewNop())
	require.NoError(t, err)

	got, err := s.Synthesize(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, "Generated post", got)
}

func TestOllamaBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req struct {
			Model   string         `json:"model"`
			Prompt  string         `json:"prompt"`
			Options map[string]any `json:"options"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.Contains(t, req.Prompt, "Transcript:\ntranscript\n")
		assert.EqualValues(t, 1000, req.Options["num_predict"])

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3.2","response":"Local ","done":false}` + "\n"))
		_, _ = w.Write([]byte(`{"model":"llama3.2","response":"post","done":true}` + "\n"))
	}))
	defer srv.Close()

	s, err := New(context.Background(), config.SynthesizerConfig{
		Provider:    config.ProviderOllama,
		Model:       "llama3.2",
		MaxTokens:   1000,
		Temperature: genai.Ptr[float32](0.7),
		Ollama:      config.OllamaConfig{Host: srv.URL},
	}, logger.NewNop())
	require.NoError(t, err)

	got, err := s.Synthesize(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, "Local post", got)
}

func TestNewTemperature(t *testing.T) {
	tests := []struct {
		name        string
		temperature *float32
		want        float32
	}{
		{name: "unset uses default", temperature: nil, want: config.DefaultTemperature},
		{name: "explicit zero kept", temperature: genai.Ptr[float32](0), want: 0},
		{name: "explicit value", temperature: genai.Ptr[float32](1.2), want: 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(context.Background(), config.SynthesizerConfig{
				Provider:    config.ProviderOllama,
				Model:       "llama3.2",
				Temperature: tt.temperature,
				Ollama:      config.OllamaConfig{Host: "http://127.0.0.1:11434"},
			}, logger.NewNop())
			require.NoError(t, err)

			impl := s.(*implSynthesizer)
			assert.Equal(t, tt.want, impl.temperature)
			assert.Equal(t, config.DefaultMaxTokens, impl.maxTokens)
		})
	}
}

func TestChatTemperature(t *testing.T) {
	assert.Greater(t, chatTemperature(0), float32(0))
	assert.Less(t, chatTemperature(0), float32(0.0001))
	assert.Equal(t, float32(0.7), chatTemperature(0.7))
}

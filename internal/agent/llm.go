package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mvp-joe/docuai/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/genai"
)

// LLM is a text-in, text-out language model.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrMissingAPIKey is returned when no API key is configured for the
// selected provider.
var ErrMissingAPIKey = errors.New("API key not found")

// apiKeyEnv lists the environment variables consulted per provider, in order.
var apiKeyEnv = map[string][]string{
	"openai": {"OPENAI_API_KEY"},
	"gemini": {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// NewLLM creates the backend named by cfg.Provider.
func NewLLM(ctx context.Context, cfg config.LLMConfig) (LLM, error) {
	provider := strings.ToLower(cfg.Provider)

	apiKey, err := resolveAPIKey(provider, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	switch provider {
	case "openai":
		return newOpenAI(cfg.Model, apiKey, cfg.Temperature)
	case "gemini":
		return newGemini(ctx, cfg.Model, apiKey, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

func resolveAPIKey(provider, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	for _, name := range apiKeyEnv[provider] {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}

	env := "OPENAI_API_KEY"
	if names := apiKeyEnv[provider]; len(names) > 0 {
		env = names[0]
	}
	return "", fmt.Errorf(`%w for provider %s. Set it using one of these methods:
1. Environment variable: export %s='your-key-here'
2. A .env file in the current directory containing: %s=your-key-here
3. The llm.api_key key in .docuai/config.yml (or DOCUAI_LLM_API_KEY)`,
		ErrMissingAPIKey, provider, env, env)
}

// openaiLLM calls OpenAI chat models through langchaingo.
type openaiLLM struct {
	llm         *openai.LLM
	temperature float64
}

func newOpenAI(model, apiKey string, temperature float64) (*openaiLLM, error) {
	llm, err := openai.New(openai.WithModel(model), openai.WithToken(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return &openaiLLM{llm: llm, temperature: temperature}, nil
}

func (o *openaiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt, llms.WithTemperature(o.temperature))
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	return out, nil
}

// geminiLLM calls Gemini models through the official genai client.
type geminiLLM struct {
	cli         *genai.Client
	model       string
	temperature float32
}

func newGemini(ctx context.Context, model, apiKey string, temperature float64) (*geminiLLM, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiLLM{cli: cli, model: model, temperature: float32(temperature)}, nil
}

func (g *geminiLLM) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

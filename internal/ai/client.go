package ai

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/rach2103/moviereview/internal/config"
)

// Generator is the boundary to the external content service. Two call
// shapes are used: free-text generation (movie data; prompts that need
// citations ask for them inside the JSON payload), and a completion
// constrained to a JSON schema (review acknowledgements).
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt, schemaName string, schemaFor any) (string, error)
}

type openAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a Generator backed by an OpenAI-compatible
// chat-completion endpoint.
func NewOpenAIGenerator(cfg *config.Config) Generator {
	clientCfg := openai.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		clientCfg.BaseURL = cfg.AIBaseURL
	}
	log.Printf("Initializing content service client, model=%s", cfg.AIModel)
	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.AIModel,
	}
}

// Generate requests a free-text completion and returns the raw reply.
func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("content service call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("content service returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateJSON requests a completion constrained to the JSON schema derived
// from schemaFor, returning the raw JSON text of the reply.
func (g *openAIGenerator) GenerateJSON(ctx context.Context, prompt, schemaName string, schemaFor any) (string, error) {
	schema, err := jsonschema.GenerateSchemaForType(schemaFor)
	if err != nil {
		return "", fmt.Errorf("failed to derive schema %s: %w", schemaName, err)
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("content service call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("content service returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

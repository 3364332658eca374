package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama3-70b-8192"

	completionTemperature = 0.7
	completionMaxTokens   = 1024
	completionTopP        = 1
)

var ErrEmptyCompletion = errors.New("completion returned no choices")

// Message - one turn of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client - a thin wrapper over the Groq chat-completions API, which speaks
// the OpenAI wire protocol.
type Client struct {
	api   *openai.Client
	model string
}

// New builds a client for the given credentials. Empty baseURL and model
// fall back to the Groq defaults.
func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: model,
	}
}

// Complete sends the conversation and returns the generated text.
func (that *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       that.model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		TopP:        completionTopP,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}

	for _, message := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	response, err := that.api.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return response.Choices[0].Message.Content, nil
}

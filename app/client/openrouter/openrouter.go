package openrouter

import (
	"companion/app/config"
	"companion/app/service/session"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

const temperature = 0.6

type Client struct {
	api   *openai.Client
	token string
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return New(cfg.OpenRouter), nil
}

func New(cfg config.OpenRouter) *Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		token: cfg.Token,
	}
}

// Complete performs a single chat completion attempt. Retries, if any, are
// the caller's business.
func (c *Client) Complete(ctx context.Context, messages []session.Turn, model string) (string, error) {
	if c.token == "" {
		return "", ErrNoCredential
	}

	aiResponse, err := c.api.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: pie.Map(messages, func(t session.Turn) openai.ChatCompletionMessage {
				return openai.ChatCompletionMessage{
					Role:    string(t.Role),
					Content: t.Content,
				}
			}),
			Temperature: temperature,
		},
	)
	if err != nil {
		return "", classify(err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", &TransportError{Reason: "no chat completion found"}
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}

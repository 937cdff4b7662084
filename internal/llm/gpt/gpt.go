package gpt

import (
	"context"
	"fmt"

	"github.com/medsimlab/woundcare-agent/internal/llm"
	"github.com/openai/openai-go"
)

func (c *Client) Invoke(ctx context.Context, request llm.Request) (*llm.Response, error) {
	message := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(request.Prompt),
		},
		MaxCompletionTokens: openai.Int(int64(request.MaxTokens)),
		Temperature:         openai.Float(request.Temperature),
		Model:               openai.ChatModel(c.ModelID),
	}

	output, err := c.Client.Chat.Completions.New(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gpt model: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := output.Choices[0]
	return &llm.Response{
		Content:    choice.Message.Content,
		StopReason: fmt.Sprint(choice.FinishReason),
	}, nil
}

// InvokeWithRetry relies on the SDK's built-in retry configuration.
func (c *Client) InvokeWithRetry(ctx context.Context, request llm.Request) (*llm.Response, error) {
	return c.Invoke(ctx, request)
}

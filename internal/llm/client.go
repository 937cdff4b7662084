package llm

import (
	"context"
)

// Client abstracts the model provider so evaluator agents can be tested
// without real API calls.
type Client interface {
	Invoke(ctx context.Context, request Request) (*Response, error)
	InvokeWithRetry(ctx context.Context, request Request) (*Response, error)
}

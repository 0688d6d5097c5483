package suggest

import "context"

// Generator runs a prompt through the provider fallback chain.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

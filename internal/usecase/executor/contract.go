package executor

import "context"

// Generator produces text from a prompt. Implemented by the OpenAI
// transport; additional providers join the chain by implementing this.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

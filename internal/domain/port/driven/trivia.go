package driven

import "context"

// TriviaClient defines the driven port for the random fact API.
type TriviaClient interface {
	RandomFact(ctx context.Context) (string, error)
}

package batch

import (
	"context"
	"errors"
	"sync"

	"lettergen/internal/shared/telemetry"
)

// ErrEmptyBatch indicates the upstream delivery system handed over zero
// items, which violates its contract and must surface as a whole-invocation
// failure.
var ErrEmptyBatch = errors.New("empty batch")

// Failure pairs one failed item's retry token with its cause.
type Failure struct {
	Token string
	Err   error
}

// Outcome partitions a settled batch into succeeded and failed tokens.
type Outcome struct {
	Succeeded []string
	Failed    []Failure
}

// Run submits every item concurrently and waits for all of them to settle.
// One item's failure never cancels or blocks another's completion; items
// share no state. Each failure is logged with its cause and reported as a
// retry token for the upstream delivery system.
func Run[T any](ctx context.Context, items []T, token func(T) string, submit func(context.Context, T) error) (Outcome, error) {
	if len(items) == 0 {
		return Outcome{}, ErrEmptyBatch
	}

	errs := make([]error, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			errs[i] = submit(ctx, item)
		}(i, item)
	}
	wg.Wait()

	var outcome Outcome
	for i, item := range items {
		tok := token(item)
		if errs[i] != nil {
			telemetry.Error("batch.item_failed", map[string]any{
				"token": tok,
				"error": errs[i].Error(),
			})
			outcome.Failed = append(outcome.Failed, Failure{Token: tok, Err: errs[i]})
			continue
		}
		outcome.Succeeded = append(outcome.Succeeded, tok)
	}
	return outcome, nil
}

// FailedTokens lists the retry tokens of every failed item.
func (o Outcome) FailedTokens() []string {
	tokens := make([]string, 0, len(o.Failed))
	for _, f := range o.Failed {
		tokens = append(tokens, f.Token)
	}
	return tokens
}

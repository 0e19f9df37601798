package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/thomas-vilte/aigit/internal/logger"
	"github.com/thomas-vilte/aigit/internal/models"
)

const (
	DefaultRetries   = 3
	DefaultBaseDelay = time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type InvokerOption func(*Invoker)

// WithSleep replaces the back-off wait.
func WithSleep(fn SleepFunc) InvokerOption {
	return func(i *Invoker) {
		i.sleep = fn
	}
}

// Invoker calls a Generator with linear back-off between failed attempts.
type Invoker struct {
	generator Generator
	retries   int
	baseDelay time.Duration
	sleep     SleepFunc
}

var _ TextGenerator = (*Invoker)(nil)

func NewInvoker(generator Generator, retries int, baseDelay time.Duration, opts ...InvokerOption) *Invoker {
	if retries <= 0 {
		retries = DefaultRetries
	}
	if baseDelay < 0 {
		baseDelay = DefaultBaseDelay
	}
	i := &Invoker{
		generator: generator,
		retries:   retries,
		baseDelay: baseDelay,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Invoke makes up to retries attempts, waiting baseDelay*attempt after the
// n-th failure. A response with blank text counts as a failure.
func (i *Invoker) Invoke(ctx context.Context, prompt string) (models.AIResponse, error) {
	log := logger.FromContext(ctx)
	log.Debug("invoking AI provider",
		"provider", i.generator.Name(),
		"prompt_length", len(prompt),
		"max_attempts", i.retries)

	var lastErr error
	for attempt := 1; attempt <= i.retries; attempt++ {
		resp, err := i.generator.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(resp.Text) == "" {
			err = domainErrors.ErrMalformedResponse.WithMessage("AI response contained no generated text")
		}
		if err == nil {
			log.Debug("AI provider responded",
				"provider", i.generator.Name(),
				"attempt", attempt)
			return resp, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return models.AIResponse{}, domainErrors.NewAppError(domainErrors.TypeInternal, "operation cancelled", ctx.Err())
		}

		if attempt == i.retries {
			break
		}

		delay := i.baseDelay * time.Duration(attempt)
		log.Warn("AI call attempt failed, retrying",
			"provider", i.generator.Name(),
			"attempt", attempt,
			"max_attempts", i.retries,
			"delay", delay,
			"error", err)

		if err := i.sleep(ctx, delay); err != nil {
			return models.AIResponse{}, domainErrors.NewAppError(domainErrors.TypeInternal, "operation cancelled", err)
		}
	}

	return models.AIResponse{}, domainErrors.ErrAICallExhausted.
		WithMessage(fmt.Sprintf("AI call failed after %d attempts", i.retries)).
		WithError(lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

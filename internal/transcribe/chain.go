package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/firgen-ai/firgen/internal/redact"
)

// ErrNoProviders means the chain was built without any transcribers.
var ErrNoProviders = errors.New("transcribe: no providers configured")

// Chain tries each provider in order and returns the first transcript.
// A failing provider is logged and the next one is tried.
type Chain struct {
	providers []Transcriber
}

func NewChain(providers ...Transcriber) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNoProviders
	}

	// Buffer once so every provider reads the same stream.
	data, err := io.ReadAll(audio)
	if err != nil {
		return "", fmt.Errorf("transcribe: read audio: %w", err)
	}

	var lastErr error
	for _, p := range c.providers {
		text, err := p.Transcribe(ctx, filename, bytes.NewReader(data))
		if err != nil {
			redact.Logf("transcribe: provider %s failed: %v", p.Name(), err)
			lastErr = err
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("transcribe: all providers failed: %w", lastErr)
}

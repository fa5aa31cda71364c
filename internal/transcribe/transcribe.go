// Package transcribe turns complaint audio into text. Providers are
// tried in order so a dead transcription backend degrades the feature
// instead of the whole service.
package transcribe

import (
	"context"
	"io"
)

// Transcriber converts one audio recording to text.
type Transcriber interface {
	// Name identifies the provider in logs.
	Name() string
	// Transcribe reads the audio stream and returns the transcript.
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

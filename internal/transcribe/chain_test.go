package transcribe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeTranscriber struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Name() string { return f.name }

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, audio io.Reader) (string, error) {
	f.calls++
	// Drain so the chain's shared buffer behavior is exercised.
	if _, err := io.ReadAll(audio); err != nil {
		return "", err
	}
	return f.text, f.err
}

func TestChainFirstProviderWins(t *testing.T) {
	first := &fakeTranscriber{name: "first", text: "my bike was stolen"}
	second := &fakeTranscriber{name: "second", text: "should not run"}

	chain := NewChain(first, second)
	got, err := chain.Transcribe(context.Background(), "a.wav", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "my bike was stolen" {
		t.Fatalf("text = %q", got)
	}
	if second.calls != 0 {
		t.Fatal("second provider should not be tried")
	}
}

func TestChainFallsThroughOnError(t *testing.T) {
	first := &fakeTranscriber{name: "first", err: errors.New("backend down")}
	second := &fakeTranscriber{name: "second", text: "transcript"}

	chain := NewChain(first, second)
	got, err := chain.Transcribe(context.Background(), "a.wav", strings.NewReader("audio"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "transcript" {
		t.Fatalf("text = %q", got)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", first.calls, second.calls)
	}
}

func TestChainAllProvidersFail(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChain(&fakeTranscriber{name: "only", err: boom})

	_, err := chain.Transcribe(context.Background(), "a.wav", strings.NewReader("audio"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain()
	_, err := chain.Transcribe(context.Background(), "a.wav", strings.NewReader("audio"))
	if !errors.Is(err, ErrNoProviders) {
		t.Fatalf("expected ErrNoProviders, got %v", err)
	}
}

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			file.Close()
			if header.Filename != "complaint.wav" {
				t.Errorf("filename = %q", header.Filename)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text":" someone snatched my phone "}`)
	}))
	defer srv.Close()

	p := NewWhisper(WhisperConfig{Name: "local", BaseURL: srv.URL, APIKey: "test-key"})
	got, err := p.Transcribe(context.Background(), "complaint.wav", strings.NewReader("fake-audio-bytes"))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "someone snatched my phone" {
		t.Fatalf("text = %q", got)
	}
}

func TestWhisperErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewWhisper(WhisperConfig{BaseURL: srv.URL})
	_, err := p.Transcribe(context.Background(), "a.wav", strings.NewReader("audio"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("error should carry status and body, got %v", err)
	}
}

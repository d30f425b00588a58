package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeTranscriber records the payload it was asked to transcribe.
type fakeTranscriber struct {
	gotAudio []byte
	gotMIME  string
	text     string
	err      error
	calls    int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio []byte, mimeType string) (string, error) {
	f.calls++
	f.gotAudio = audio
	f.gotMIME = mimeType
	return f.text, f.err
}

// staticReader serves fixed bytes for any path.
func staticReader(data []byte, err error) func(string) ([]byte, error) {
	return func(string) ([]byte, error) {
		return data, err
	}
}

// TestExtractPlainTextVerbatim checks UTF-8 passthrough for text files.
func TestExtractPlainTextVerbatim(t *testing.T) {
	content := "linha um\nlinha dois — acentuação\n"
	e := NewForTests(&fakeTranscriber{}, staticReader([]byte(content), nil))

	got, err := e.Extract(context.Background(), "/tmp/nota.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != content {
		t.Fatalf("content = %q, want %q", got, content)
	}
}

// TestExtractMarkdownByExtension checks MIME sniffing from the extension.
func TestExtractMarkdownByExtension(t *testing.T) {
	e := NewForTests(&fakeTranscriber{}, staticReader([]byte("# título"), nil))

	got, err := e.Extract(context.Background(), "/tmp/doc.md", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "# título" {
		t.Fatalf("content = %q", got)
	}
}

// TestExtractStripsMIMEParameters checks charset suffix handling.
func TestExtractStripsMIMEParameters(t *testing.T) {
	e := NewForTests(&fakeTranscriber{}, staticReader([]byte("ok"), nil))

	if _, err := e.Extract(context.Background(), "/tmp/a.txt", "text/plain; charset=utf-8"); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
}

// TestExtractAudioTranscribes checks the audio payload reaches the
// transcriber and its text is returned.
func TestExtractAudioTranscribes(t *testing.T) {
	transcriber := &fakeTranscriber{text: "  fala transcrita  "}
	e := NewForTests(transcriber, staticReader([]byte{0x52, 0x49, 0x46, 0x46}, nil))

	got, err := e.Extract(context.Background(), "/tmp/gravacao.wav", "audio/wav")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "fala transcrita" {
		t.Fatalf("text = %q, want trimmed transcription", got)
	}
	if transcriber.calls != 1 {
		t.Fatalf("transcriber calls = %d, want 1", transcriber.calls)
	}
	if transcriber.gotMIME != "audio/wav" {
		t.Fatalf("mime = %q, want audio/wav", transcriber.gotMIME)
	}
	if len(transcriber.gotAudio) != 4 {
		t.Fatalf("audio bytes = %d, want 4", len(transcriber.gotAudio))
	}
}

// TestExtractAudioFailurePropagates checks transcription error mapping.
func TestExtractAudioFailurePropagates(t *testing.T) {
	transcriber := &fakeTranscriber{err: errors.New("quota exceeded")}
	e := NewForTests(transcriber, staticReader([]byte("audio"), nil))

	_, err := e.Extract(context.Background(), "/tmp/voz.mp3", "audio/mpeg")
	if err == nil {
		t.Fatal("expected transcription error")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v, want wrapped cause", err)
	}
}

// TestExtractUnsupportedType checks the immediate unsupported-type failure.
func TestExtractUnsupportedType(t *testing.T) {
	transcriber := &fakeTranscriber{}
	e := NewForTests(transcriber, staticReader([]byte("x"), nil))

	_, err := e.Extract(context.Background(), "/tmp/foto.png", "image/png")
	if err == nil {
		t.Fatal("expected unsupported type error")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("error = %v", err)
	}
	if transcriber.calls != 0 {
		t.Fatal("unsupported types must not reach the transcriber")
	}
}

// TestExtractReadFailure checks filesystem error wrapping.
func TestExtractReadFailure(t *testing.T) {
	e := NewForTests(&fakeTranscriber{}, staticReader(nil, errors.New("permission denied")))

	if _, err := e.Extract(context.Background(), "/tmp/protegido.txt", "text/plain"); err == nil {
		t.Fatal("expected read error")
	}
}

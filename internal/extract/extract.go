package extract

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Transcriber converts an audio payload into text through the provider.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Extractor decodes a file's bytes into plain text according to its
// declared media type.
type Extractor struct {
	transcriber Transcriber
	readFile    func(name string) ([]byte, error)
}

// New creates an extractor backed by the given transcriber.
func New(transcriber Transcriber) *Extractor {
	return &Extractor{
		transcriber: transcriber,
		readFile:    os.ReadFile,
	}
}

// Extract resolves the file at path into text. Audio is transcribed, PDFs
// are read page by page, plain text and markdown pass through verbatim.
// Any other media type fails without partial content.
func (e *Extractor) Extract(ctx context.Context, path, mimeType string) (string, error) {
	mimeType = normalizeMIME(path, mimeType)

	switch {
	case strings.HasPrefix(mimeType, "audio/"):
		return e.extractAudio(ctx, path, mimeType)
	case mimeType == "application/pdf":
		return extractPDF(path)
	case mimeType == "text/plain" || mimeType == "text/markdown":
		data, err := e.readFile(path)
		if err != nil {
			return "", fmt.Errorf("read file %s: %w", filepath.Base(path), err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}
}

// extractAudio reads the raw audio payload and asks the provider for a
// transcription.
func (e *Extractor) extractAudio(ctx context.Context, path, mimeType string) (string, error) {
	data, err := e.readFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio file %s: %w", filepath.Base(path), err)
	}

	text, err := e.transcriber.Transcribe(ctx, data, mimeType)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", filepath.Base(path), err)
	}
	return strings.TrimSpace(text), nil
}

// extractPDF concatenates per-page text in document order, one page per
// line.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("parse pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("parse pdf page %d of %s: %w", i, filepath.Base(path), err)
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return buf.String(), nil
}

// normalizeMIME fills in a missing media type from the file extension and
// strips parameters such as charset.
func normalizeMIME(path, mimeType string) string {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	}
	if mimeType == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			mimeType = "text/markdown"
		case ".txt":
			mimeType = "text/plain"
		}
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// NewForTests creates an extractor with an injectable file reader.
func NewForTests(transcriber Transcriber, readFile func(name string) ([]byte, error)) *Extractor {
	return &Extractor{
		transcriber: transcriber,
		readFile:    readFile,
	}
}

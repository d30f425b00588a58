package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"content-studio/internal/domain"
)

var unsafeTitleChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ScriptText renders the plain-text transcript of a generated script:
// title line, separator, then one labeled block per part. Pure and
// byte-stable for identical input.
func ScriptText(script domain.ScriptData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Título: %s\n\n", script.Title)
	b.WriteString("--- ROTEIRO ---\n\n")

	for _, part := range script.Script {
		fmt.Fprintf(&b, "%s:\n%s\n\n", speakerLabel(part.Speaker), part.Text)
	}
	return b.String()
}

// speakerLabel maps a script speaker to its transcript label.
func speakerLabel(speaker domain.Speaker) string {
	switch speaker {
	case domain.SpeakerA:
		return "APRESENTADOR A"
	case domain.SpeakerB:
		return "APRESENTADOR B"
	default:
		return "NARRADOR"
	}
}

// SanitizeTitle reduces a title to a safe filename stem: characters
// outside the alphanumeric set become underscores and the result is
// lowercased.
func SanitizeTitle(title string) string {
	stem := strings.ToLower(unsafeTitleChars.ReplaceAllString(title, "_"))
	if strings.Trim(stem, "_") == "" {
		return "resultado"
	}
	return stem
}

// AudioFileName builds the audio artifact filename for a title.
func AudioFileName(title string) string {
	return SanitizeTitle(title) + ".wav"
}

// VideoFileName builds the video artifact filename for a title.
func VideoFileName(title string) string {
	return SanitizeTitle(title) + ".mp4"
}

// ScriptFileName builds the transcript artifact filename for a title.
func ScriptFileName(title string) string {
	return SanitizeTitle(title) + "_roteiro.txt"
}

// ScriptPDFFileName builds the PDF transcript filename for a title.
func ScriptPDFFileName(title string) string {
	return SanitizeTitle(title) + "_roteiro.pdf"
}

// WriteFile stores one artifact under dir, creating it when needed, and
// returns the written path.
func WriteFile(dir, name string, data []byte) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"content-studio/internal/domain"
)

// TestScriptTextNarratorFormat checks the exact byte layout of the
// transcript for a single-narrator script.
func TestScriptTextNarratorFormat(t *testing.T) {
	script := domain.ScriptData{
		Title: "Meu Vídeo",
		Script: []domain.ScriptPart{
			{Speaker: domain.SpeakerNarrator, Text: "Hello"},
		},
	}

	want := "Título: Meu Vídeo\n\n--- ROTEIRO ---\n\nNARRADOR:\nHello\n\n"
	if got := ScriptText(script); got != want {
		t.Fatalf("transcript = %q, want %q", got, want)
	}
}

// TestScriptTextDualSpeakerLabels checks podcast labels and part order.
func TestScriptTextDualSpeakerLabels(t *testing.T) {
	script := domain.ScriptData{
		Title: "Conversa",
		Script: []domain.ScriptPart{
			{Speaker: domain.SpeakerA, Text: "Hi"},
			{Speaker: domain.SpeakerB, Text: "Yo"},
		},
	}

	want := "Título: Conversa\n\n--- ROTEIRO ---\n\n" +
		"APRESENTADOR A:\nHi\n\n" +
		"APRESENTADOR B:\nYo\n\n"
	if got := ScriptText(script); got != want {
		t.Fatalf("transcript = %q", got)
	}
}

// TestScriptTextIdempotent checks the export is a pure function.
func TestScriptTextIdempotent(t *testing.T) {
	script := domain.ScriptData{
		Title:  "Estável",
		Script: []domain.ScriptPart{{Speaker: domain.SpeakerNarrator, Text: "x"}},
	}

	first := ScriptText(script)
	second := ScriptText(script)
	if first != second {
		t.Fatalf("outputs differ: %q vs %q", first, second)
	}
}

// TestSanitizeTitle checks the safe-filename mapping.
func TestSanitizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Meu Vídeo: Parte 1!", "meu_v_deo__parte_1_"},
		{"Simple", "simple"},
		{"ABC-123", "abc_123"},
		{"", "resultado"},
		{"!!!", "resultado"},
	}

	for _, tc := range cases {
		if got := SanitizeTitle(tc.in); got != tc.want {
			t.Fatalf("SanitizeTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestArtifactFileNames checks per-artifact extensions.
func TestArtifactFileNames(t *testing.T) {
	if got := AudioFileName("Meu Título"); got != "meu_t_tulo.wav" {
		t.Fatalf("audio = %q", got)
	}
	if got := VideoFileName("Meu Título"); got != "meu_t_tulo.mp4" {
		t.Fatalf("video = %q", got)
	}
	if got := ScriptFileName("Meu Título"); got != "meu_t_tulo_roteiro.txt" {
		t.Fatalf("script = %q", got)
	}
	if got := ScriptPDFFileName("Meu Título"); got != "meu_t_tulo_roteiro.pdf" {
		t.Fatalf("pdf = %q", got)
	}
}

// TestWriteFileCreatesDirectory checks artifact persistence.
func TestWriteFileCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saida", "aninhada")

	path, err := WriteFile(dir, "roteiro.txt", []byte("conteúdo"))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "conteúdo" {
		t.Fatalf("data = %q", data)
	}
}

// TestWriteFileRejectsEmptyDir checks the empty-destination guard.
func TestWriteFileRejectsEmptyDir(t *testing.T) {
	if _, err := WriteFile("  ", "a.txt", []byte("x")); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

// TestWrapPCMHeader checks the WAV container fields.
func TestWrapPCMHeader(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	wav := WrapPCM(pcm, "audio/L16;codec=pcm;rate=24000")

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(wav), 44+len(pcm))
	}
	if !bytes.Equal(wav[0:4], []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Fatalf("header magic = %q %q", wav[0:4], wav[8:12])
	}
	// sample rate little-endian at offset 24
	rate := int(wav[24]) | int(wav[25])<<8 | int(wav[26])<<16 | int(wav[27])<<24
	if rate != 24000 {
		t.Fatalf("rate = %d, want 24000", rate)
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Fatal("payload must follow the header unchanged")
	}
}

// TestWrapPCMDefaultRate checks the fallback when no rate is reported.
func TestWrapPCMDefaultRate(t *testing.T) {
	wav := WrapPCM([]byte{0, 0}, "audio/L16")
	rate := int(wav[24]) | int(wav[25])<<8 | int(wav[26])<<16 | int(wav[27])<<24
	if rate != defaultSampleRate {
		t.Fatalf("rate = %d, want %d", rate, defaultSampleRate)
	}
}

// TestScriptPDFProducesDocument checks PDF rendering succeeds and yields
// a PDF magic header.
func TestScriptPDFProducesDocument(t *testing.T) {
	script := domain.ScriptData{
		Title: "Documento",
		Script: []domain.ScriptPart{
			{Speaker: domain.SpeakerNarrator, Text: "Texto narrado com acentuação."},
		},
	}

	data, err := ScriptPDF(script)
	if err != nil {
		t.Fatalf("ScriptPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with PDF magic: %q", data[:8])
	}
}

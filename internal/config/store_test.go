package config

import (
	"os"
	"path/filepath"
	"testing"

	"content-studio/internal/domain"
)

// TestDefaultSettings verifies baseline defaults are present.
func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()
	if cfg.OutputType != domain.OutputTypeVideo {
		t.Fatalf("output type = %q, want video", cfg.OutputType)
	}
	if cfg.OutputLanguage != domain.OutputLanguagePTBR {
		t.Fatalf("language = %q, want pt-br", cfg.OutputLanguage)
	}
	if cfg.VoiceStyle != domain.VoiceStyleSingle {
		t.Fatalf("voice style = %q, want single", cfg.VoiceStyle)
	}
	if cfg.Voice1 != "Kore" || cfg.Voice2 != "Puck" {
		t.Fatalf("voices = %q/%q, want Kore/Puck", cfg.Voice1, cfg.Voice2)
	}
	if cfg.OutputDir == "" {
		t.Fatal("expected non-empty output dir")
	}
	if cfg.Theme != domain.ThemeLight {
		t.Fatalf("theme = %q, want light", cfg.Theme)
	}
}

// TestNormalize verifies unknown values are replaced with defaults.
func TestNormalize(t *testing.T) {
	got := Normalize(domain.Settings{
		OutputType:     "hologram",
		OutputLanguage: "fr",
		VoiceStyle:     "choir",
		Voice1:         "NotAVoice",
		Voice2:         "AlsoNot",
		Theme:          "sepia",
	})

	want := DefaultSettings()
	if got != want {
		t.Fatalf("normalized = %+v, want %+v", got, want)
	}
}

// TestNormalizeKeepsValidValues verifies no clobbering of good settings.
func TestNormalizeKeepsValidValues(t *testing.T) {
	in := domain.Settings{
		OutputType:     domain.OutputTypeAudio,
		OutputLanguage: domain.OutputLanguageEN,
		VoiceStyle:     domain.VoiceStylePodcast,
		Voice1:         "Zephyr",
		Voice2:         "Charon",
		OutputDir:      "/out",
		Theme:          domain.ThemeDark,
	}
	if got := Normalize(in); got != in {
		t.Fatalf("normalized = %+v, want unchanged %+v", got, in)
	}
}

// TestJSONStoreLoadMissingReturnsDefaults checks first-run behavior.
func TestJSONStoreLoadMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "settings.json")
	store := NewJSONStore(path)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.OutputLanguage != domain.OutputLanguagePTBR {
		t.Fatalf("language = %q, want pt-br", got.OutputLanguage)
	}
}

// TestJSONStoreSaveAndLoadRoundTrip checks persisted settings fidelity.
func TestJSONStoreSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")
	store := NewJSONStore(path)
	want := domain.Settings{
		OutputType:     domain.OutputTypeAudio,
		OutputLanguage: domain.OutputLanguageEN,
		VoiceStyle:     domain.VoiceStylePodcast,
		Voice1:         "Fenrir",
		Voice2:         "Zephyr",
		OutputDir:      "/out",
		Theme:          domain.ThemeDark,
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

// TestJSONStoreLoadInvalidJSON checks parse error handling.
func TestJSONStoreLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "settings.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not-json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewJSONStore(path)
	if _, err := store.Load(); err == nil {
		t.Fatal("expected json parse error")
	}
}

package config

import (
	"os"
	"path/filepath"

	"content-studio/internal/domain"
)

// DefaultSettings returns baseline local configuration for first launch.
func DefaultSettings() domain.Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return domain.Settings{
		OutputType:     domain.OutputTypeVideo,
		OutputLanguage: domain.OutputLanguagePTBR,
		VoiceStyle:     domain.VoiceStyleSingle,
		Voice1:         "Kore",
		Voice2:         "Puck",
		OutputDir:      filepath.Join(homeDir, "Documents", "ContentStudio"),
		Theme:          domain.ThemeLight,
	}
}

// Normalize replaces unknown or missing enum values with defaults so a
// stale settings file never produces an invalid generation request.
func Normalize(cfg domain.Settings) domain.Settings {
	defaults := DefaultSettings()

	if cfg.OutputType != domain.OutputTypeVideo && cfg.OutputType != domain.OutputTypeAudio {
		cfg.OutputType = defaults.OutputType
	}
	if cfg.OutputLanguage != domain.OutputLanguagePTBR && cfg.OutputLanguage != domain.OutputLanguageEN {
		cfg.OutputLanguage = defaults.OutputLanguage
	}
	if cfg.VoiceStyle != domain.VoiceStyleSingle && cfg.VoiceStyle != domain.VoiceStylePodcast {
		cfg.VoiceStyle = defaults.VoiceStyle
	}
	if !domain.IsKnownVoice(cfg.Voice1) {
		cfg.Voice1 = defaults.Voice1
	}
	if !domain.IsKnownVoice(cfg.Voice2) {
		cfg.Voice2 = defaults.Voice2
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.Theme != domain.ThemeLight && cfg.Theme != domain.ThemeDark {
		cfg.Theme = defaults.Theme
	}

	return cfg
}

// APIKeyFromEnv reads the Gemini API key from the environment.
func APIKeyFromEnv() string {
	return os.Getenv("GEMINI_API_KEY")
}

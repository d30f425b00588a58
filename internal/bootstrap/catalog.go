package bootstrap

import (
	"content-studio/internal/domain"
)

// OptionCatalog holds every selectable value the settings UI offers.
type OptionCatalog struct {
	Voices          []domain.VoiceOption    `json:"voices"`
	VoiceStyles     []domain.VoiceStyle     `json:"voiceStyles"`
	OutputTypes     []domain.OutputType     `json:"outputTypes"`
	OutputLanguages []domain.OutputLanguage `json:"outputLanguages"`
	Themes          []domain.Theme          `json:"themes"`
}

// GetVoices returns the prebuilt voice presets for the voice selectors.
func (a *App) GetVoices() []domain.VoiceOption {
	return domain.Voices
}

// GetOptionCatalog returns all selectable settings values in one call.
func (a *App) GetOptionCatalog() OptionCatalog {
	return OptionCatalog{
		Voices:          domain.Voices,
		VoiceStyles:     []domain.VoiceStyle{domain.VoiceStyleSingle, domain.VoiceStylePodcast},
		OutputTypes:     []domain.OutputType{domain.OutputTypeVideo, domain.OutputTypeAudio},
		OutputLanguages: []domain.OutputLanguage{domain.OutputLanguagePTBR, domain.OutputLanguageEN},
		Themes:          []domain.Theme{domain.ThemeLight, domain.ThemeDark},
	}
}

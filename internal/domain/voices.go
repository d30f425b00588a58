package domain

// VoiceOption describes one prebuilt speech synthesis voice.
type VoiceOption struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Voices lists the prebuilt voices offered for both narration styles.
var Voices = []VoiceOption{
	{Name: "Kore", Description: "Firm, clear delivery"},
	{Name: "Puck", Description: "Upbeat, conversational"},
	{Name: "Charon", Description: "Deep, informative"},
	{Name: "Fenrir", Description: "Excitable, energetic"},
	{Name: "Zephyr", Description: "Bright, friendly"},
}

// IsKnownVoice reports whether name matches a prebuilt voice.
func IsKnownVoice(name string) bool {
	for _, v := range Voices {
		if v.Name == name {
			return true
		}
	}
	return false
}

package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"content-studio/internal/domain"
)

// Fixed transcript labels the TTS speaker mapping is keyed on. Speaker A
// always maps to the first voice, speaker B to the second.
const (
	SpeakerLabelA = "Joe"
	SpeakerLabelB = "Jane"
)

type speechConfig struct {
	VoiceConfig             *voiceConfig             `json:"voiceConfig,omitempty"`
	MultiSpeakerVoiceConfig *multiSpeakerVoiceConfig `json:"multiSpeakerVoiceConfig,omitempty"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type multiSpeakerVoiceConfig struct {
	SpeakerVoiceConfigs []speakerVoiceConfig `json:"speakerVoiceConfigs"`
}

type speakerVoiceConfig struct {
	Speaker     string      `json:"speaker"`
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

// SpeechAudio is the decoded synthesis payload and its reported media type.
type SpeechAudio struct {
	Data     []byte
	MIMEType string
}

// SynthesizeSpeech turns a flattened transcript into audio. Single style
// uses one prebuilt voice; podcast style maps the Joe/Jane labels to the
// two selected voices.
func (c *Client) SynthesizeSpeech(ctx context.Context, transcript string, style domain.VoiceStyle, voice1, voice2 string) (SpeechAudio, error) {
	if strings.TrimSpace(transcript) == "" {
		return SpeechAudio{}, fmt.Errorf("synthesize speech: transcript is empty")
	}

	cfg := &speechConfig{}
	if style == domain.VoiceStylePodcast {
		cfg.MultiSpeakerVoiceConfig = &multiSpeakerVoiceConfig{
			SpeakerVoiceConfigs: []speakerVoiceConfig{
				{Speaker: SpeakerLabelA, VoiceConfig: voiceConfig{prebuiltVoiceConfig{voice1}}},
				{Speaker: SpeakerLabelB, VoiceConfig: voiceConfig{prebuiltVoiceConfig{voice2}}},
			},
		}
	} else {
		cfg.VoiceConfig = &voiceConfig{prebuiltVoiceConfig{voice1}}
	}

	reqBody := generateContentRequest{
		Contents: []content{{
			Parts: []part{{Text: transcript}},
		}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig:       cfg,
		},
	}

	var resp generateContentResponse
	if err := c.postJSON(ctx, c.modelURL(ttsModel, "generateContent", c.apiKey), reqBody, &resp); err != nil {
		return SpeechAudio{}, fmt.Errorf("synthesize speech: %w", err)
	}

	payload := resp.firstInlineData()
	if payload == nil {
		return SpeechAudio{}, fmt.Errorf("synthesize speech: no audio data in response")
	}

	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		return SpeechAudio{}, fmt.Errorf("synthesize speech: decode audio payload: %w", err)
	}
	if len(data) == 0 {
		return SpeechAudio{}, fmt.Errorf("synthesize speech: empty audio payload")
	}

	return SpeechAudio{Data: data, MIMEType: payload.MIMEType}, nil
}

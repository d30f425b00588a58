package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

const transcribeInstruction = "Transcreva o arquivo de áudio fornecido. Responda apenas com o texto transcrito."

// Transcribe sends an inline audio payload to the text model and returns
// the transcription.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("transcribe: audio payload is empty")
	}

	reqBody := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
				{Text: transcribeInstruction},
			},
		}},
	}

	var resp generateContentResponse
	if err := c.postJSON(ctx, c.modelURL(textModel, "generateContent", c.apiKey), reqBody, &resp); err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	text := strings.TrimSpace(resp.firstText())
	if text == "" {
		return "", fmt.Errorf("transcribe: empty transcription response")
	}
	return text, nil
}

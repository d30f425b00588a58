package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"content-studio/internal/domain"
)

const (
	singlePersona = "Você é um roteirista especialista em vídeos de estilo documentário."

	podcastPersona = "Você é um roteirista especialista que adapta conteúdo para um diálogo de " +
		"podcast conversacional entre dois apresentadores, Apresentador A e Apresentador B."

	scriptInstructionTemplate = "%s Analise o texto do usuário e gere um roteiro. O roteiro deve ser " +
		"gerado no idioma: %s. A saída deve ser exclusivamente um objeto JSON válido que adere ao " +
		"esquema fornecido. Estruture a informação em um fluxo lógico para um vídeo curto ou clipe de áudio."

	scriptContextTemplate = "Analise o seguinte contexto e crie um roteiro a partir dele: \n\n---CONTEXTO---\n%s\n---FIM DO CONTEXTO---"
)

// scriptSchema constrains the structured completion to the ScriptData shape.
var scriptSchema = &schema{
	Type: "object",
	Properties: map[string]*schema{
		"title": {
			Type:        "string",
			Description: "A concise and engaging title for the video, based on the context.",
		},
		"visual_summary_prompt": {
			Type: "string",
			Description: "A rich, descriptive paragraph that can be used as a prompt to generate a " +
				"single, representative video. Describe the key themes, objects, and mood of the content.",
		},
		"script": {
			Type:        "array",
			Description: "An array of script parts, structuring the content for narration or dialogue.",
			Items: &schema{
				Type: "object",
				Properties: map[string]*schema{
					"speaker": {
						Type: "string",
						Description: "The designated speaker for this line. Use 'Narrator' for a single " +
							"speaker, or 'A' and 'B' for a two-person dialogue.",
					},
					"text": {
						Type:        "string",
						Description: "The spoken text for this part of the script.",
					},
				},
				Required: []string{"speaker", "text"},
			},
		},
	},
	Required: []string{"title", "visual_summary_prompt", "script"},
}

// GenerateScript asks the text model for a structured narration script
// built from the combined source context.
func (c *Client) GenerateScript(ctx context.Context, sourceContext string, style domain.VoiceStyle, lang domain.OutputLanguage) (domain.ScriptData, error) {
	persona := singlePersona
	if style == domain.VoiceStylePodcast {
		persona = podcastPersona
	}

	instruction := fmt.Sprintf(scriptInstructionTemplate, persona, languageName(lang))

	reqBody := generateContentRequest{
		Contents: []content{{
			Parts: []part{{Text: fmt.Sprintf(scriptContextTemplate, sourceContext)}},
		}},
		SystemInstruction: &content{
			Parts: []part{{Text: instruction}},
		},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   scriptSchema,
		},
	}

	var resp generateContentResponse
	if err := c.postJSON(ctx, c.modelURL(textModel, "generateContent", c.apiKey), reqBody, &resp); err != nil {
		return domain.ScriptData{}, fmt.Errorf("generate script: %w", err)
	}

	raw := stripFences(resp.firstText())
	if raw == "" {
		return domain.ScriptData{}, fmt.Errorf("generate script: empty model response")
	}

	var script domain.ScriptData
	if err := json.Unmarshal([]byte(raw), &script); err != nil {
		return domain.ScriptData{}, fmt.Errorf("generate script: invalid script json: %w", err)
	}
	if err := validateScript(script); err != nil {
		return domain.ScriptData{}, fmt.Errorf("generate script: %w", err)
	}

	return script, nil
}

// validateScript enforces the required fields of a usable script.
func validateScript(script domain.ScriptData) error {
	if strings.TrimSpace(script.Title) == "" {
		return fmt.Errorf("script is missing a title")
	}
	if strings.TrimSpace(script.VisualSummaryPrompt) == "" {
		return fmt.Errorf("script is missing a visual summary prompt")
	}
	if len(script.Script) == 0 {
		return fmt.Errorf("script has no parts")
	}
	for i, p := range script.Script {
		if strings.TrimSpace(p.Text) == "" {
			return fmt.Errorf("script part %d has empty text", i)
		}
	}
	return nil
}

// languageName maps the output language selection to its prompt wording.
func languageName(lang domain.OutputLanguage) string {
	if lang == domain.OutputLanguageEN {
		return "English"
	}
	return "Brazilian Portuguese"
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

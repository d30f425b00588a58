package domain

// SourceKind identifies how a piece of user content entered the app.
type SourceKind string

const (
	SourceKindText SourceKind = "text"
	SourceKindFile SourceKind = "file"
	SourceKindURL  SourceKind = "url"
)

// SourceStatus tracks one source through the ingestion lifecycle.
type SourceStatus string

const (
	SourceStatusPending    SourceStatus = "pending"
	SourceStatusProcessing SourceStatus = "processing"
	SourceStatusReady      SourceStatus = "ready"
	SourceStatusError      SourceStatus = "error"
)

// Source is one unit of user-provided content. Content is set exactly
// when Status is ready; Error is set exactly when Status is error.
type Source struct {
	ID       string       `json:"id"`
	Kind     SourceKind   `json:"kind"`
	Name     string       `json:"name"`
	Status   SourceStatus `json:"status"`
	Content  string       `json:"content,omitempty"`
	Error    string       `json:"error,omitempty"`
	Path     string       `json:"path,omitempty"`
	MIMEType string       `json:"mimeType,omitempty"`
}

// Speaker designates who delivers a script line.
type Speaker string

const (
	SpeakerNarrator Speaker = "Narrator"
	SpeakerA        Speaker = "A"
	SpeakerB        Speaker = "B"
)

// ScriptPart is one spoken line of the generated script.
type ScriptPart struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// ScriptData is the structured output of the script generation stage.
// Field tags match the JSON schema requested from the model.
type ScriptData struct {
	Title               string       `json:"title"`
	VisualSummaryPrompt string       `json:"visual_summary_prompt"`
	Script              []ScriptPart `json:"script"`
}

// VoiceStyle selects narration framing for script and speech stages.
type VoiceStyle string

const (
	VoiceStyleSingle  VoiceStyle = "single"
	VoiceStylePodcast VoiceStyle = "podcast"
)

// OutputType selects the final artifact of a generation run.
type OutputType string

const (
	OutputTypeVideo OutputType = "video"
	OutputTypeAudio OutputType = "audio"
)

// OutputLanguage selects the language of the generated script.
type OutputLanguage string

const (
	OutputLanguagePTBR OutputLanguage = "pt-br"
	OutputLanguageEN   OutputLanguage = "en"
)

// Theme is the persisted UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings contains user-selectable runtime configuration.
type Settings struct {
	OutputType     OutputType     `json:"outputType"`
	OutputLanguage OutputLanguage `json:"outputLanguage"`
	VoiceStyle     VoiceStyle     `json:"voiceStyle"`
	Voice1         string         `json:"voice1"`
	Voice2         string         `json:"voice2"`
	OutputDir      string         `json:"outputDir"`
	Theme          Theme          `json:"theme"`
	VideoAPIKey    string         `json:"videoApiKey,omitempty"`
}

// JobStatus tracks each pipeline stage for a single generation job.
type JobStatus string

const (
	JobStatusIdle         JobStatus = "idle"
	JobStatusScripting    JobStatus = "scripting"
	JobStatusSynthesizing JobStatus = "synthesizing"
	JobStatusRendering    JobStatus = "rendering"
	JobStatusDownloading  JobStatus = "downloading"
	JobStatusDone         JobStatus = "done"
	JobStatusFailed       JobStatus = "failed"
	JobStatusCancelled    JobStatus = "cancelled"
)

// Job stores the current job identity and lifecycle status.
type Job struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`
}

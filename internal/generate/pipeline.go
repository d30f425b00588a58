package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"content-studio/internal/domain"
	"content-studio/internal/gemini"
)

// Stage names reported through OnStage, in execution order.
const (
	StagePreparing    = "preparing"
	StageScripting    = "scripting"
	StageSynthesizing = "synthesizing"
	StageRendering    = "rendering"
	StageDownloading  = "downloading"
)

const defaultPollInterval = 10 * time.Second

// sourceSeparator joins the ready sources into the combined context.
const sourceSeparator = "\n\n---\n\n"

// Provider is the slice of the Gemini client the pipeline depends on.
type Provider interface {
	GenerateScript(ctx context.Context, sourceContext string, style domain.VoiceStyle, lang domain.OutputLanguage) (domain.ScriptData, error)
	SynthesizeSpeech(ctx context.Context, transcript string, style domain.VoiceStyle, voice1, voice2 string) (gemini.SpeechAudio, error)
	SubmitVideoJob(ctx context.Context, prompt string) (gemini.VideoOperation, error)
	PollVideoJob(ctx context.Context, op gemini.VideoOperation) (gemini.VideoOperation, error)
	DownloadVideo(ctx context.Context, uri string) ([]byte, error)
}

// Request contains the input snapshot and callbacks for one generation run.
type Request struct {
	Sources  []domain.Source
	Settings domain.Settings
	OnStage  func(stage string)
}

// Result is the complete output of a successful run. Video is nil for
// audio-only output.
type Result struct {
	Audio     []byte
	AudioMIME string
	Video     []byte
	Script    domain.ScriptData
	Title     string
}

// PipelineError is a stage-aware error surfaced as one user message.
type PipelineError struct {
	Stage   string
	Message string
	Err     error
}

// Error formats pipeline failures for logs and UI.
func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Pipeline orchestrates the script, speech, and optional video stages
// against the provider. Stages run strictly sequentially; the video poll
// loop is the only long-lived wait and it honors context cancellation.
type Pipeline struct {
	provider     Provider
	pollInterval time.Duration
	maxPollWait  time.Duration
	now          func() time.Time
	wait         func(ctx context.Context, d time.Duration) error
}

// Option adjusts pipeline behavior.
type Option func(*Pipeline)

// WithPollInterval overrides the fixed delay between video status polls.
func WithPollInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// WithMaxPollWait bounds the total time spent waiting for the remote
// video job. Zero keeps the loop unbounded; completion then depends on
// the remote job or caller cancellation.
func WithMaxPollWait(d time.Duration) Option {
	return func(p *Pipeline) {
		p.maxPollWait = d
	}
}

// NewPipeline constructs the production pipeline.
func NewPipeline(provider Provider, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider:     provider,
		pollInterval: defaultPollInterval,
		now:          time.Now,
		wait:         waitWithContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one generation end to end. Any stage failure aborts the
// remaining stages and discards prior artifacts.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	ready := lo.Filter(req.Sources, func(src domain.Source, _ int) bool {
		return src.Status == domain.SourceStatusReady && src.Content != ""
	})
	if len(ready) == 0 {
		return Result{}, &PipelineError{
			Stage:   StagePreparing,
			Message: "nenhum conteúdo pronto para gerar",
		}
	}

	combined := CombineContext(ready)
	settings := req.Settings

	emitStage(req.OnStage, StageScripting)
	script, err := p.provider.GenerateScript(ctx, combined, settings.VoiceStyle, settings.OutputLanguage)
	if err != nil {
		return Result{}, &PipelineError{
			Stage:   StageScripting,
			Message: "não foi possível obter um roteiro válido da IA",
			Err:     err,
		}
	}

	emitStage(req.OnStage, StageSynthesizing)
	transcript := FlattenTranscript(script.Script, settings.VoiceStyle)
	audio, err := p.provider.SynthesizeSpeech(ctx, transcript, settings.VoiceStyle, settings.Voice1, settings.Voice2)
	if err != nil {
		return Result{}, &PipelineError{
			Stage:   StageSynthesizing,
			Message: "falha ao gerar a fala",
			Err:     err,
		}
	}

	result := Result{
		Audio:     audio.Data,
		AudioMIME: audio.MIMEType,
		Script:    script,
		Title:     script.Title,
	}

	if settings.OutputType != domain.OutputTypeVideo {
		return result, nil
	}

	emitStage(req.OnStage, StageRendering)
	video, err := p.renderVideo(ctx, script.VisualSummaryPrompt, req.OnStage)
	if err != nil {
		return Result{}, err
	}
	result.Video = video

	return result, nil
}

// renderVideo submits the remote render, polls it to completion, and
// downloads the finished asset.
func (p *Pipeline) renderVideo(ctx context.Context, prompt string, onStage func(string)) ([]byte, error) {
	op, err := p.provider.SubmitVideoJob(ctx, prompt)
	if err != nil {
		return nil, &PipelineError{
			Stage:   StageRendering,
			Message: "falha ao iniciar a geração do vídeo",
			Err:     err,
		}
	}

	var deadline time.Time
	if p.maxPollWait > 0 {
		deadline = p.now().Add(p.maxPollWait)
	}

	for !op.Done {
		if !deadline.IsZero() && p.now().After(deadline) {
			return nil, &PipelineError{
				Stage:   StageRendering,
				Message: fmt.Sprintf("a geração do vídeo excedeu o tempo limite de %s", p.maxPollWait),
			}
		}

		if err := p.wait(ctx, p.pollInterval); err != nil {
			return nil, &PipelineError{
				Stage:   StageRendering,
				Message: "a geração do vídeo foi interrompida",
				Err:     err,
			}
		}

		op, err = p.provider.PollVideoJob(ctx, op)
		if err != nil {
			return nil, &PipelineError{
				Stage:   StageRendering,
				Message: "falha ao obter o status da geração do vídeo",
				Err:     err,
			}
		}
	}

	if op.Error != nil {
		return nil, &PipelineError{
			Stage:   StageRendering,
			Message: op.Error.Error(),
			Err:     op.Error,
		}
	}
	if op.DownloadURI == "" {
		return nil, &PipelineError{
			Stage:   StageRendering,
			Message: "não foi possível recuperar o link de download do vídeo",
		}
	}

	emitStage(onStage, StageDownloading)
	data, err := p.provider.DownloadVideo(ctx, op.DownloadURI)
	if err != nil {
		return nil, &PipelineError{
			Stage:   StageDownloading,
			Message: "falha ao baixar o vídeo gerado",
			Err:     err,
		}
	}
	return data, nil
}

// CombineContext concatenates ready sources into the single context string
// passed downstream. List order is preserved; no truncation is applied.
func CombineContext(ready []domain.Source) string {
	parts := lo.Map(ready, func(src domain.Source, _ int) string {
		return fmt.Sprintf("Fonte: %s\n\n%s", src.Name, src.Content)
	})
	return strings.Join(parts, sourceSeparator)
}

// FlattenTranscript renders script parts into the synthesis transcript,
// one line per part in script order. Podcast style prefixes each line with
// the fixed label the speaker voice map is keyed on.
func FlattenTranscript(parts []domain.ScriptPart, style domain.VoiceStyle) string {
	lines := lo.Map(parts, func(p domain.ScriptPart, _ int) string {
		if style != domain.VoiceStylePodcast {
			return p.Text
		}
		label := gemini.SpeakerLabelA
		if p.Speaker == domain.SpeakerB {
			label = gemini.SpeakerLabelB
		}
		return label + ": " + p.Text
	})
	return strings.Join(lines, "\n")
}

// emitStage forwards stage updates when a callback is configured.
func emitStage(cb func(stage string), stage string) {
	if cb != nil {
		cb(stage)
	}
}

// waitWithContext sleeps for d or returns early with the context error.
func waitWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewPipelineForTests constructs a pipeline with injectable time control.
func NewPipelineForTests(
	provider Provider,
	pollInterval time.Duration,
	maxPollWait time.Duration,
	now func() time.Time,
	wait func(ctx context.Context, d time.Duration) error,
) *Pipeline {
	return &Pipeline{
		provider:     provider,
		pollInterval: pollInterval,
		maxPollWait:  maxPollWait,
		now:          now,
		wait:         wait,
	}
}

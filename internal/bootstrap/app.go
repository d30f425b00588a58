package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"content-studio/internal/config"
	"content-studio/internal/diagnostics"
	"content-studio/internal/domain"
	"content-studio/internal/export"
	"content-studio/internal/extract"
	"content-studio/internal/gemini"
	"content-studio/internal/generate"
	"content-studio/internal/jobs"
	"content-studio/internal/sources"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var sourceDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Audio and documents",
		Pattern:     "*.mp3;*.wav;*.m4a;*.flac;*.aac;*.ogg;*.pdf;*.txt;*.md",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

// ErrNoReadySources is returned when generation starts with no usable content.
var ErrNoReadySources = errors.New("nenhum conteúdo pronto para gerar")

// ErrNoResult is returned when an artifact save is requested before a
// generation has completed.
var ErrNoResult = errors.New("no generation result available")

// ResultInfo is the metadata the UI shows for a completed generation.
// The artifact bytes stay on the backend until a save is requested.
type ResultInfo struct {
	Title      string `json:"title"`
	HasVideo   bool   `json:"hasVideo"`
	AudioName  string `json:"audioName"`
	VideoName  string `json:"videoName,omitempty"`
	ScriptName string `json:"scriptName"`
}

// App wires configuration, sources, jobs, pipeline, and UI runtime callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Jobs        *jobs.Manager
	Pipeline    pipelineRunner
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	checker     *diagnostics.Checker
	client      *gemini.Client
	sources     *sources.Collection
	ingestor    *sources.Ingestor

	mu          sync.Mutex
	activeJobID string
	cancel      context.CancelFunc
	events      *jobs.EventBus
	runtimeCtx  context.Context
	result      *generate.Result
}

// pipelineRunner isolates the generation pipeline behind an interface.
type pipelineRunner interface {
	Run(ctx context.Context, req generate.Request) (generate.Result, error)
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded
// frontend assets. A missing Gemini API key does not block startup: the
// diagnostics report carries the failure and generation is rejected until
// the key is provided.
func NewWithAssets(assets fs.FS) (*App, error) {
	_ = godotenv.Load()

	store := config.NewJSONStore(config.DefaultPath())
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var client *gemini.Client
	apiKey := config.APIKeyFromEnv()
	if strings.TrimSpace(apiKey) != "" {
		client, err = gemini.NewClient(gemini.Config{
			APIKey:      apiKey,
			VideoAPIKey: settings.VideoAPIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("configure gemini client: %w", err)
		}
	}

	app := &App{
		Settings: settings,
		Store:    store,
		Jobs:     jobs.NewManager(),
		assets:   assets,
		client:   client,
		sources:  sources.NewCollection(),
		events:   jobs.NewEventBus(1000),
	}

	var transcriber extract.Transcriber = missingKeyTranscriber{}
	if client != nil {
		transcriber = client
		app.Pipeline = generate.NewPipeline(client)
	}
	app.ingestor = sources.NewIngestor(app.sources, extract.New(transcriber), app.publishSourceChange)

	app.checker = diagnostics.NewChecker(config.APIKeyFromEnv, app.HasVideoAPIKey)
	app.Diagnostics = app.checker.Run(settings)

	return app, nil
}

// missingKeyTranscriber rejects audio extraction when no API key is set.
type missingKeyTranscriber struct{}

func (missingKeyTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "", gemini.ErrMissingAPIKey
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Content Studio",
		Width:       1180,
		Height:      780,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores Wails runtime context for push events.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// ListSources returns a snapshot of all sources in insertion order.
func (a *App) ListSources() []domain.Source {
	return a.sources.Snapshot()
}

// AddTextSource adds pasted text as an immediately ready source.
func (a *App) AddTextSource(name, content string) (domain.Source, error) {
	source, err := a.sources.AddText(name, content)
	if err != nil {
		return domain.Source{}, err
	}
	a.publishSourceChange(source)
	return source, nil
}

// AddURLSource reports that URL ingestion is not available.
func (a *App) AddURLSource(url string) (domain.Source, error) {
	return a.sources.AddURL(url)
}

// PickSourceFiles opens a native multi-file dialog for source selection.
func (a *App) PickSourceFiles() ([]string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return nil, err
	}

	paths, err := wailsruntime.OpenMultipleFilesDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select source files",
		Filters: sourceDialogFilter,
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// AddFileSources registers file sources and starts background extraction.
// Each file is processed independently; one failure never blocks the rest.
func (a *App) AddFileSources(paths []string) ([]domain.Source, error) {
	added := make([]domain.Source, 0, len(paths))
	for _, path := range paths {
		source, err := a.sources.AddFile(filepath.Base(path), path, "")
		if err != nil {
			return added, err
		}
		added = append(added, source)
		a.publishSourceChange(source)
		a.ingestor.Process(context.Background(), source.ID)
	}
	return added, nil
}

// RemoveSource deletes a source in any state.
func (a *App) RemoveSource(id string) error {
	if err := a.sources.Remove(id); err != nil {
		return err
	}
	a.emitEvent("sources:changed", a.sources.Snapshot())
	return nil
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, then refreshes diagnostics.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := config.Normalize(settings)
	normalized.OutputDir = strings.TrimSpace(normalized.OutputDir)
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = normalized
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// GetTheme returns the persisted UI theme.
func (a *App) GetTheme() domain.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Settings.Theme
}

// SetTheme persists the UI theme without touching other settings.
func (a *App) SetTheme(theme domain.Theme) error {
	settings, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings.Theme = theme
	if _, err := a.SaveSettings(settings); err != nil {
		return err
	}
	return nil
}

// HasVideoAPIKey reports whether the video generation path is available.
func (a *App) HasVideoAPIKey() bool {
	return a.client != nil && a.client.HasVideoAPIKey()
}

// SelectVideoAPIKey stores the billed key that gates video generation and
// persists it with the settings.
func (a *App) SelectVideoAPIKey(key string) error {
	if a.client == nil {
		return gemini.ErrMissingAPIKey
	}
	if strings.TrimSpace(key) == "" {
		return gemini.ErrMissingVideoAPIKey
	}

	a.client.SetVideoAPIKey(key)

	settings, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	settings.VideoAPIKey = strings.TrimSpace(key)
	if err := a.Store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(settings)
	}
	a.mu.Unlock()
	return nil
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Diagnostics
}

// RefreshDiagnostics reloads settings and reruns startup checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.Diagnostics = a.checker.Run(settings)
	report := a.Diagnostics
	a.mu.Unlock()
	return report, nil
}

// StartGeneration snapshots the ready sources and runs the pipeline
// asynchronously. Only one generation runs at a time.
func (a *App) StartGeneration() (domain.Job, error) {
	if a.Pipeline == nil {
		return domain.Job{}, gemini.ErrMissingAPIKey
	}

	ready := a.sources.Ready()
	if len(ready) == 0 {
		return domain.Job{}, ErrNoReadySources
	}

	settings, err := a.Store.Load()
	if err != nil {
		return domain.Job{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.OutputType == domain.OutputTypeVideo && !a.HasVideoAPIKey() {
		return domain.Job{}, gemini.ErrMissingVideoAPIKey
	}

	jobID := uuid.NewString()
	if err := a.Jobs.Start(jobID); err != nil {
		return domain.Job{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.mu.Lock()
	a.activeJobID = jobID
	a.cancel = cancel
	a.Settings = settings
	a.result = nil
	a.mu.Unlock()

	a.publishStatus(jobID, domain.JobStatusScripting, "Gerando roteiro...")

	go a.runGenerationJob(ctx, jobID, ready, settings)
	return a.Jobs.Current(), nil
}

// CancelGeneration cancels the currently running job, if any.
func (a *App) CancelGeneration() error {
	a.mu.Lock()
	cancel := a.cancel
	activeJobID := a.activeJobID
	a.mu.Unlock()

	if cancel == nil {
		return jobs.ErrNoRunningJob
	}

	cancel()
	if err := a.Jobs.Cancel(); err != nil && !errors.Is(err, jobs.ErrNoRunningJob) {
		return err
	}

	if activeJobID != "" {
		a.publishStatus(activeJobID, domain.JobStatusCancelled, "Cancelamento solicitado")
	}
	return nil
}

// CurrentJob returns current job metadata and status.
func (a *App) CurrentJob() domain.Job {
	return a.Jobs.Current()
}

// JobEvents returns all events with sequence greater than sinceSeq.
func (a *App) JobEvents(sinceSeq int64) []jobs.Event {
	return a.events.Since(sinceSeq)
}

// LatestResult returns metadata for the held generation result.
func (a *App) LatestResult() (ResultInfo, error) {
	a.mu.Lock()
	result := a.result
	a.mu.Unlock()

	if result == nil {
		return ResultInfo{}, ErrNoResult
	}
	return resultInfo(result), nil
}

// SaveAudio writes the generated audio as a WAV file into the output dir.
func (a *App) SaveAudio() (string, error) {
	result, settings, err := a.heldResult()
	if err != nil {
		return "", err
	}

	wav := export.WrapPCM(result.Audio, result.AudioMIME)
	return export.WriteFile(settings.OutputDir, export.AudioFileName(result.Title), wav)
}

// SaveVideo writes the generated video into the output dir.
func (a *App) SaveVideo() (string, error) {
	result, settings, err := a.heldResult()
	if err != nil {
		return "", err
	}
	if len(result.Video) == 0 {
		return "", fmt.Errorf("no video in the current result")
	}

	return export.WriteFile(settings.OutputDir, export.VideoFileName(result.Title), result.Video)
}

// SaveScript writes the transcript as a text file into the output dir.
func (a *App) SaveScript() (string, error) {
	result, settings, err := a.heldResult()
	if err != nil {
		return "", err
	}

	text := export.ScriptText(result.Script)
	return export.WriteFile(settings.OutputDir, export.ScriptFileName(result.Title), []byte(text))
}

// SaveScriptPDF writes the transcript as a PDF into the output dir.
func (a *App) SaveScriptPDF() (string, error) {
	result, settings, err := a.heldResult()
	if err != nil {
		return "", err
	}

	data, err := export.ScriptPDF(result.Script)
	if err != nil {
		return "", fmt.Errorf("render script pdf: %w", err)
	}
	return export.WriteFile(settings.OutputDir, export.ScriptPDFFileName(result.Title), data)
}

// OpenOutputFolder opens the given path (or configured output dir) in the
// platform file manager.
func (a *App) OpenOutputFolder(path string) error {
	target := strings.TrimSpace(path)
	if target == "" {
		a.mu.Lock()
		target = a.Settings.OutputDir
		a.mu.Unlock()
	}
	if target == "" {
		return fmt.Errorf("output path is empty")
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	openPath := target
	if !info.IsDir() {
		openPath = filepath.Dir(target)
	}

	return openInFileManager(openPath)
}

// Reset discards the held result bytes and returns the job state to idle.
func (a *App) Reset() {
	a.mu.Lock()
	a.result = nil
	a.mu.Unlock()
	a.Jobs.Reset()
}

// runGenerationJob executes the pipeline and maps outcomes to job events.
func (a *App) runGenerationJob(ctx context.Context, jobID string, ready []domain.Source, settings domain.Settings) {
	req := generate.Request{
		Sources:  ready,
		Settings: settings,
		OnStage: func(stage string) {
			status, message, ok := mapStage(stage)
			if !ok {
				return
			}
			if err := a.Jobs.Transition(status); err == nil {
				a.publishStatus(jobID, status, message)
			}
		},
	}

	result, err := a.Pipeline.Run(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_ = a.Jobs.Transition(domain.JobStatusCancelled)
			a.publishStatus(jobID, domain.JobStatusCancelled, "Geração cancelada")
			a.clearActiveJob(jobID)
			return
		}

		_ = a.Jobs.Transition(domain.JobStatusFailed)
		a.publishStatus(jobID, domain.JobStatusFailed, "Geração falhou")
		a.publishEvent(jobs.Event{
			JobID:   jobID,
			Type:    jobs.EventTypeError,
			Status:  domain.JobStatusFailed,
			Message: fmt.Sprintf("falha ao gerar: %v", err),
		})
		a.clearActiveJob(jobID)
		return
	}

	a.mu.Lock()
	a.result = &result
	a.mu.Unlock()

	if err := a.Jobs.Transition(domain.JobStatusDone); err == nil {
		a.publishStatus(jobID, domain.JobStatusDone, "Geração concluída")
	}

	info := resultInfo(&result)
	a.publishEvent(jobs.Event{
		JobID:     jobID,
		Type:      jobs.EventTypeResult,
		Status:    domain.JobStatusDone,
		Message:   "Resultado pronto",
		Title:     info.Title,
		AudioName: info.AudioName,
		VideoName: info.VideoName,
	})
	a.clearActiveJob(jobID)
}

// heldResult returns the stored result and a settings snapshot.
func (a *App) heldResult() (*generate.Result, domain.Settings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result == nil {
		return nil, domain.Settings{}, ErrNoResult
	}
	return a.result, a.Settings, nil
}

// resultInfo derives UI metadata from a pipeline result.
func resultInfo(result *generate.Result) ResultInfo {
	info := ResultInfo{
		Title:      result.Title,
		HasVideo:   len(result.Video) > 0,
		AudioName:  export.AudioFileName(result.Title),
		ScriptName: export.ScriptFileName(result.Title),
	}
	if info.HasVideo {
		info.VideoName = export.VideoFileName(result.Title)
	}
	return info
}

// publishSourceChange pushes the updated source list to the UI.
func (a *App) publishSourceChange(domain.Source) {
	a.emitEvent("sources:changed", a.sources.Snapshot())
}

// publishStatus sends a normalized status event.
func (a *App) publishStatus(jobID string, status domain.JobStatus, message string) {
	a.publishEvent(jobs.Event{
		JobID:   jobID,
		Type:    jobs.EventTypeStatus,
		Status:  status,
		Message: message,
	})
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event jobs.Event) {
	published := a.events.Publish(event)
	a.emitEvent("job:event", published)
}

// emitEvent pushes one payload through the Wails runtime when available.
func (a *App) emitEvent(name string, payload any) {
	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, name, payload)
	}
}

// clearActiveJob clears cancellation handles for completed job IDs.
func (a *App) clearActiveJob(jobID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeJobID == jobID {
		a.activeJobID = ""
		a.cancel = nil
	}
}

// mapStage maps pipeline stage names to job statuses and UI messages.
func mapStage(stage string) (domain.JobStatus, string, bool) {
	switch stage {
	case generate.StageScripting:
		return domain.JobStatusScripting, "Gerando roteiro...", true
	case generate.StageSynthesizing:
		return domain.JobStatusSynthesizing, "Sintetizando áudio...", true
	case generate.StageRendering:
		return domain.JobStatusRendering, "Gerando vídeo... Isso pode levar vários minutos.", true
	case generate.StageDownloading:
		return domain.JobStatusDownloading, "Baixando vídeo...", true
	default:
		return "", "", false
	}
}

// runtimeContext returns current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// openInFileManager launches the platform file explorer for the provided path.
func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", filepath.Clean(path))
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	return nil
}

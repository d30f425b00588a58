package diagnostics

import (
	"fmt"
	"os"
	"strings"
	"time"

	"content-studio/internal/domain"
)

// Checker validates credentials and required filesystem paths.
type Checker struct {
	apiKey      func() string
	hasVideoKey func() bool
	mkdirAll    func(string, os.FileMode) error
	createTemp  func(string, string) (*os.File, error)
	remove      func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(apiKey func() string, hasVideoKey func() bool) *Checker {
	return &Checker{
		apiKey:      apiKey,
		hasVideoKey: hasVideoKey,
		mkdirAll:    os.MkdirAll,
		createTemp:  os.CreateTemp,
		remove:      os.Remove,
	}
}

// Run executes all startup checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkAPIKey(),
		c.checkOutputDir(settings.OutputDir),
		c.checkVideoKey(settings.OutputType),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkAPIKey verifies the Gemini API key is configured.
func (c *Checker) checkAPIKey() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "gemini_api_key",
		Name: "Gemini API key",
	}

	if strings.TrimSpace(c.apiKey()) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Gemini API key is not configured."
		item.Hint = "Set GEMINI_API_KEY in the environment or a .env file next to the app."
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = "Gemini API key is configured."
	return item
}

// checkVideoKey reports whether the video generation key is selected.
// Missing is a warning, not a failure: audio-only generation works
// without it.
func (c *Checker) checkVideoKey(outputType domain.OutputType) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "video_api_key",
		Name: "Video API key",
	}

	if !c.hasVideoKey() {
		item.Status = domain.DiagnosticStatusWarn
		item.Message = "Video API key is not selected."
		if outputType == domain.OutputTypeVideo {
			item.Hint = "Select a billed API key before starting a video generation, or switch output type to audio."
		} else {
			item.Hint = "Only needed when output type is video."
		}
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = "Video API key is selected."
	return item
}

// checkOutputDir validates output directory existence and write access.
func (c *Checker) checkOutputDir(outputDir string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "output_dir",
		Name: "Output directory",
	}

	if strings.TrimSpace(outputDir) == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "Output directory is empty."
		item.Hint = "Set an output directory where generated files can be written."
		return item
	}

	if err := c.mkdirAll(outputDir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create output directory: %s", outputDir)
		item.Hint = "Choose a writable location or adjust filesystem permissions."
		return item
	}

	tmpFile, err := c.createTemp(outputDir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Output directory is not writable: %s", outputDir)
		item.Hint = "Choose a writable directory for generated media."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", outputDir)
	return item
}

// NewCheckerForTests creates checker with injectable dependencies.
func NewCheckerForTests(
	apiKey func() string,
	hasVideoKey func() bool,
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		apiKey:      apiKey,
		hasVideoKey: hasVideoKey,
		mkdirAll:    mkdirAll,
		createTemp:  createTemp,
		remove:      remove,
	}
}

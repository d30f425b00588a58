package diagnostics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"content-studio/internal/domain"
)

// TestCheckerRunAllPass validates happy-path diagnostics report.
func TestCheckerRunAllPass(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "output")
	checker := NewCheckerForTests(
		func() string { return "api-key" },
		func() bool { return true },
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	report := checker.Run(domain.Settings{
		OutputType: domain.OutputTypeVideo,
		OutputDir:  outputDir,
	})

	if report.HasFailures {
		t.Fatalf("expected no failures, got %+v", report.Items)
	}
	assertStatusByID(t, report, "gemini_api_key", domain.DiagnosticStatusPass)
	assertStatusByID(t, report, "output_dir", domain.DiagnosticStatusPass)
	assertStatusByID(t, report, "video_api_key", domain.DiagnosticStatusPass)
}

// TestCheckerRunMissingKeyAndDir validates failure reporting.
func TestCheckerRunMissingKeyAndDir(t *testing.T) {
	checker := NewCheckerForTests(
		func() string { return "  " },
		func() bool { return false },
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	report := checker.Run(domain.Settings{
		OutputDir: "",
	})

	if !report.HasFailures {
		t.Fatal("expected failures")
	}

	assertStatusByID(t, report, "gemini_api_key", domain.DiagnosticStatusFail)
	assertStatusByID(t, report, "output_dir", domain.DiagnosticStatusFail)
}

// TestCheckerMissingVideoKeyIsWarning validates the video key never
// fails the report on its own.
func TestCheckerMissingVideoKeyIsWarning(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "output")
	checker := NewCheckerForTests(
		func() string { return "api-key" },
		func() bool { return false },
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	report := checker.Run(domain.Settings{
		OutputType: domain.OutputTypeAudio,
		OutputDir:  outputDir,
	})

	if report.HasFailures {
		t.Fatalf("warning must not count as failure: %+v", report.Items)
	}
	assertStatusByID(t, report, "video_api_key", domain.DiagnosticStatusWarn)
}

// TestCheckerUnwritableOutputDir validates write-check failure.
func TestCheckerUnwritableOutputDir(t *testing.T) {
	checker := NewCheckerForTests(
		func() string { return "api-key" },
		func() bool { return true },
		func(string, os.FileMode) error { return nil },
		func(string, string) (*os.File, error) { return nil, errors.New("permission denied") },
		os.Remove,
	)

	report := checker.Run(domain.Settings{OutputDir: "/somewhere"})

	if !report.HasFailures {
		t.Fatal("expected failure for unwritable directory")
	}
	assertStatusByID(t, report, "output_dir", domain.DiagnosticStatusFail)
}

// assertStatusByID finds an item by ID and verifies its status.
func assertStatusByID(t *testing.T, report domain.DiagnosticReport, id string, want domain.DiagnosticStatus) {
	t.Helper()
	for _, item := range report.Items {
		if item.ID == id {
			if item.Status != want {
				t.Fatalf("item %s status = %s, want %s", id, item.Status, want)
			}
			return
		}
	}
	t.Fatalf("item %s not found in report", id)
}

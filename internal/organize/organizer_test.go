package organize

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"photokeeper/internal/models"
)

func TestTargetDir_DefaultPattern(t *testing.T) {
	o := NewOrganizer("/library", "")
	r := &models.PhotoRecord{
		TakenAt: time.Date(2025, 6, 19, 22, 41, 11, 0, time.UTC),
	}

	got := o.TargetDir(r)
	want := filepath.Join("/library", "2025", "2025-06-19")
	if got != want {
		t.Errorf("TargetDir = %q, want %q", got, want)
	}
}

func TestTargetDir_FallsBackToModTime(t *testing.T) {
	o := NewOrganizer("/library", "{year}/{month}")
	r := &models.PhotoRecord{
		ModTime: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	got := o.TargetDir(r)
	want := filepath.Join("/library", "2024", "03")
	if got != want {
		t.Errorf("TargetDir = %q, want %q", got, want)
	}
}

func TestTargetDir_CameraToken(t *testing.T) {
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		camera string
		want   string
	}{
		{"plain", "Canon EOS R5", filepath.Join("/library", "Canon EOS R5", "2025")},
		{"empty falls back", "", filepath.Join("/library", "unknown", "2025")},
		{"separators sanitized", "Weird/Cam\\Name", filepath.Join("/library", "Weird-Cam-Name", "2025")},
	}

	o := NewOrganizer("/library", "{camera}/{year}")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &models.PhotoRecord{TakenAt: date, Camera: tt.camera}
			if got := o.TargetDir(r); got != tt.want {
				t.Errorf("TargetDir = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrganize_DryRunPlansWithoutMoving(t *testing.T) {
	srcDir := t.TempDir()
	libDir := t.TempDir()

	path := filepath.Join(srcDir, "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	records := []*models.PhotoRecord{{
		Path:    path,
		Name:    "photo.jpg",
		TakenAt: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
	}}

	result := NewOrganizer(libDir, "").Organize(records, true)

	if len(result.Moves) != 1 {
		t.Fatalf("expected 1 planned move, got %d", len(result.Moves))
	}
	want := filepath.Join(libDir, "2025", "2025-06-19")
	if result.Moves[0].Target != want {
		t.Errorf("target = %q, want %q", result.Moves[0].Target, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("dry run moved the file: %v", err)
	}
}

func TestOrganize_MovesFile(t *testing.T) {
	srcDir := t.TempDir()
	libDir := t.TempDir()

	path := filepath.Join(srcDir, "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	records := []*models.PhotoRecord{{
		Path:    path,
		Name:    "photo.jpg",
		TakenAt: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
	}}

	result := NewOrganizer(libDir, "").Organize(records, false)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(result.Moves))
	}

	moved := filepath.Join(libDir, "2025", "2025-06-19", "photo.jpg")
	if _, err := os.Stat(moved); err != nil {
		t.Errorf("file not found at destination: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("source file should be gone after move")
	}
}

func TestOrganize_SkipsFilesAlreadyInPlace(t *testing.T) {
	libDir := t.TempDir()
	targetDir := filepath.Join(libDir, "2025", "2025-06-19")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		t.Fatalf("failed to create target dir: %v", err)
	}

	path := filepath.Join(targetDir, "photo.jpg")
	if err := os.WriteFile(path, []byte("jpeg"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	records := []*models.PhotoRecord{{
		Path:    path,
		Name:    "photo.jpg",
		TakenAt: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
	}}

	result := NewOrganizer(libDir, "").Organize(records, false)

	if len(result.Moves) != 0 {
		t.Errorf("file already in place should not move, got %v", result.Moves)
	}
}

func TestOrganize_FailureIsolatedPerFile(t *testing.T) {
	srcDir := t.TempDir()
	libDir := t.TempDir()

	good := filepath.Join(srcDir, "good.jpg")
	if err := os.WriteFile(good, []byte("jpeg"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	records := []*models.PhotoRecord{
		{Path: filepath.Join(srcDir, "missing.jpg"), Name: "missing.jpg",
			TakenAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Path: good, Name: "good.jpg",
			TakenAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	result := NewOrganizer(libDir, "").Organize(records, false)

	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
	if len(result.Moves) != 1 {
		t.Errorf("the good file should still move, got %d moves", len(result.Moves))
	}
}

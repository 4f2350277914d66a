// Package organize relocates photos into a pattern-defined folder layout.
package organize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"photokeeper/internal/fileutil"
	"photokeeper/internal/models"
)

// DefaultPattern lays photos out as Originals/2025/2025-06-19/.
const DefaultPattern = "{year}/{year}-{month}-{day}"

// Organizer moves photos under a root directory according to a path
// pattern. Supported tokens: {year}, {month}, {day}, {camera}, rendered
// from the record's capture date (falling back to mod time).
type Organizer struct {
	root    string
	pattern string
}

// NewOrganizer creates an Organizer. An empty pattern uses DefaultPattern.
func NewOrganizer(root, pattern string) *Organizer {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Organizer{root: root, pattern: pattern}
}

// TargetDir renders the destination directory for a record.
func (o *Organizer) TargetDir(r *models.PhotoRecord) string {
	date := r.BestDate()

	camera := strings.TrimSpace(r.Camera)
	if camera == "" {
		camera = "unknown"
	}
	// Camera names can contain path separators on odd firmware.
	camera = strings.Map(func(c rune) rune {
		if c == '/' || c == '\\' {
			return '-'
		}
		return c
	}, camera)

	rendered := strings.NewReplacer(
		"{year}", date.Format("2006"),
		"{month}", date.Format("01"),
		"{day}", date.Format("02"),
		"{camera}", camera,
	).Replace(o.pattern)

	return filepath.Join(o.root, rendered)
}

// Move is one planned or executed relocation.
type Move struct {
	Source string
	Target string // destination directory
}

// Result summarizes an organize run.
type Result struct {
	Moves  []Move
	Errors []string
}

// Organize relocates every record into its target directory. With dryRun
// set, moves are planned but the filesystem is untouched. Failures are
// isolated per file.
func (o *Organizer) Organize(records []*models.PhotoRecord, dryRun bool) *Result {
	result := &Result{}

	for _, r := range records {
		targetDir := o.TargetDir(r)
		if filepath.Dir(r.Path) == targetDir {
			continue // already in place
		}

		if dryRun {
			result.Moves = append(result.Moves, Move{Source: r.Path, Target: targetDir})
			continue
		}

		if err := fileutil.MoveFile(r.Path, targetDir); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to move %s: %v", r.Path, err))
			continue
		}

		log.Debug().Str("from", r.Path).Str("to", targetDir).Msg("organized photo")
		result.Moves = append(result.Moves, Move{Source: r.Path, Target: targetDir})
	}

	return result
}

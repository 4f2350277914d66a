package dedupe

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"photokeeper/internal/fileutil"
	"photokeeper/internal/models"
)

// Remover deletes redundant files from duplicate groups, keeping one
// survivor per group according to a retention strategy.
type Remover struct {
	strategy   models.RetentionStrategy
	dryRun     bool
	useTrash   bool
	progressFn ProgressFunc
}

// RemoverOption configures a Remover.
type RemoverOption func(*Remover)

// WithDryRun computes the removal outcome without touching the filesystem.
func WithDryRun(dryRun bool) RemoverOption {
	return func(r *Remover) {
		r.dryRun = dryRun
	}
}

// WithTrash routes deletions to the system trash instead of unlinking.
func WithTrash(useTrash bool) RemoverOption {
	return func(r *Remover) {
		r.useTrash = useTrash
	}
}

// WithRemoveProgress sets a progress callback invoked before each removal.
func WithRemoveProgress(fn ProgressFunc) RemoverOption {
	return func(r *Remover) {
		r.progressFn = fn
	}
}

// NewRemover creates a new Remover for the given retention strategy.
func NewRemover(strategy models.RetentionStrategy, opts ...RemoverOption) *Remover {
	r := &Remover{strategy: strategy}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remove processes groups in list order, deleting every member except the
// survivor chosen by the retention strategy. Deletion failures are
// isolated per file: each is recorded as an error string and processing
// continues with the remaining files and groups.
func (r *Remover) Remove(groups []*models.DuplicateGroup) *models.RemovalOutcome {
	outcome := &models.RemovalOutcome{
		Removed: []string{},
		Errors:  []string{},
	}

	// Total removal count across all groups, computed once up front so
	// progress reporting has a stable denominator.
	total := 0
	for _, g := range groups {
		if len(g.Files) > 1 {
			total += len(g.Files) - 1
		}
	}

	count := 0
	for _, g := range groups {
		if len(g.Files) <= 1 {
			continue
		}

		for _, f := range r.selectRemovals(g) {
			count++
			if r.progressFn != nil {
				r.progressFn(count, total, f.Name)
			}

			if r.dryRun {
				outcome.Removed = append(outcome.Removed, f.Path)
				outcome.SavedSpace += f.Size
				continue
			}

			if err := r.delete(f.Path); err != nil {
				outcome.Errors = append(outcome.Errors, fmt.Sprintf("failed to remove %s: %v", f.Path, err))
				continue
			}

			log.Debug().Str("path", f.Path).Int64("size", f.Size).Msg("removed duplicate")
			outcome.Removed = append(outcome.Removed, f.Path)
			outcome.SavedSpace += f.Size
		}
	}

	return outcome
}

// selectRemovals returns the group members to delete: everything except
// the survivor chosen by the strategy. Sorting is stable so ties preserve
// input member order.
func (r *Remover) selectRemovals(g *models.DuplicateGroup) []*models.PhotoRecord {
	files := make([]*models.PhotoRecord, len(g.Files))
	copy(files, g.Files)

	switch r.strategy {
	case models.KeepNewest:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].ModTime.After(files[j].ModTime)
		})
	case models.KeepLargest:
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Size > files[j].Size
		})
	case models.KeepFirst:
		// Input order already has the survivor first.
	}

	return files[1:]
}

func (r *Remover) delete(path string) error {
	if r.useTrash {
		return fileutil.MoveToTrash(path)
	}
	return os.Remove(path)
}

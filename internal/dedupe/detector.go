package dedupe

import (
	"time"

	"github.com/rs/zerolog/log"

	"photokeeper/internal/models"
)

// ProgressFunc reports pipeline progress. For detection, current is the
// stage name ("hashing", "grouping"); for removal, the file being removed.
// Callbacks run inline and must not block.
type ProgressFunc func(done, total int, current string)

// Detector drives fingerprint enrichment and duplicate grouping end to end.
type Detector struct {
	enricher   *Enricher
	progressFn ProgressFunc
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithDetectProgress sets a progress callback for detection stages.
func WithDetectProgress(fn ProgressFunc) DetectorOption {
	return func(d *Detector) {
		d.progressFn = fn
	}
}

// NewDetector creates a new Detector.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{enricher: NewEnricher()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect enriches the records, groups them by content hash and structural
// fingerprint with exact-match precedence, and computes aggregate stats.
// Per-file hashing failures are absorbed by the enricher; Detect itself
// always returns a completed result.
func (d *Detector) Detect(records []*models.PhotoRecord) *models.DetectionResult {
	start := time.Now()
	total := len(records)

	d.progress(0, total, "hashing")
	d.enricher.Enrich(records)

	d.progress(total, total, "grouping")
	exact := GroupByContentHash(records)
	structural := GroupByFingerprint(records)
	groups := MergeGroups(exact, structural)

	totalDuplicates := 0
	var wastedSpace int64
	for _, g := range groups {
		totalDuplicates += g.DuplicateCount
		// Approximation: average member size times the extra copies.
		// The remover reports exact reclaimed bytes separately.
		wastedSpace += g.TotalSize / int64(len(g.Files)) * int64(g.DuplicateCount)
	}

	durationMS := time.Since(start).Milliseconds()
	if durationMS < 1 {
		durationMS = 1
	}

	log.Debug().
		Int("files", total).
		Int("exact_groups", len(exact)).
		Int("structural_groups", len(structural)).
		Int("merged_groups", len(groups)).
		Int64("duration_ms", durationMS).
		Msg("detection complete")

	return &models.DetectionResult{
		TotalFiles:       total,
		UniqueFiles:      total - totalDuplicates,
		Groups:           groups,
		TotalDuplicates:  totalDuplicates,
		TotalWastedSpace: wastedSpace,
		DurationMS:       durationMS,
	}
}

func (d *Detector) progress(done, total int, current string) {
	if d.progressFn != nil {
		d.progressFn(done, total, current)
	}
}

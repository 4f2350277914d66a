package models

import (
	"fmt"
	"time"
)

// PhotoRecord holds metadata and hash information for one cataloged photo.
// Records are created by the metadata extractor (no hash fields) and
// decorated by the fingerprint enricher; grouping, selection, and removal
// never mutate them.
type PhotoRecord struct {
	ID      int64     `json:"id"`
	Path    string    `json:"path"` // absolute path, unique key
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
	TakenAt time.Time `json:"taken_at,omitempty"` // zero when unknown
	Camera  string    `json:"camera,omitempty"`
	Width   int       `json:"width,omitempty"`
	Height  int       `json:"height,omitempty"`

	// ContentHash is the SHA-256 of the full file bytes in lowercase hex.
	// Empty until enriched, or left empty when enrichment failed.
	ContentHash string `json:"content_hash,omitempty"`

	// StructuralFP is a 16-hex-char digest over dimensions, taken-at,
	// camera, and size. Empty when width or height is unknown.
	StructuralFP string `json:"structural_fp,omitempty"`
}

// HashKind distinguishes how a duplicate group was matched.
type HashKind string

const (
	// KindExact groups byte-identical files by content hash.
	KindExact HashKind = "exact"
	// KindStructural groups likely-same photos by structural fingerprint.
	KindStructural HashKind = "structural"
)

// DuplicateGroup is a set of two or more records sharing one hash value.
// Singleton buckets are never materialized as groups.
type DuplicateGroup struct {
	Hash           string         `json:"hash"`
	Kind           HashKind       `json:"kind"`
	Files          []*PhotoRecord `json:"files"` // discovery order
	TotalSize      int64          `json:"total_size"`
	DuplicateCount int            `json:"duplicate_count"` // len(Files) - 1
}

// DetectionResult is the aggregate outcome of one detection run.
type DetectionResult struct {
	TotalFiles       int               `json:"total_files"`
	UniqueFiles      int               `json:"unique_files"`
	Groups           []*DuplicateGroup `json:"duplicate_groups"`
	TotalDuplicates  int               `json:"total_duplicates"`
	TotalWastedSpace int64             `json:"total_wasted_space"`
	DurationMS       int64             `json:"duration_ms"` // wall clock, minimum 1
}

// RemovalOutcome is the result of applying a retention strategy.
type RemovalOutcome struct {
	Removed    []string `json:"removed"` // paths deleted (or that would be, under dry run)
	Errors     []string `json:"errors"`  // one entry per failed deletion
	SavedSpace int64    `json:"saved_space"`
}

// RetentionStrategy selects which member of a duplicate group survives.
type RetentionStrategy string

const (
	// KeepFirst preserves the first member in input order.
	KeepFirst RetentionStrategy = "keep-first"
	// KeepNewest preserves the member with the most recent mod time.
	KeepNewest RetentionStrategy = "keep-newest"
	// KeepLargest preserves the member with the largest file size.
	KeepLargest RetentionStrategy = "keep-largest"
)

// ParseRetentionStrategy validates a strategy name from user input.
func ParseRetentionStrategy(s string) (RetentionStrategy, error) {
	switch RetentionStrategy(s) {
	case KeepFirst, KeepNewest, KeepLargest:
		return RetentionStrategy(s), nil
	}
	return "", fmt.Errorf("unknown retention strategy %q (want keep-first, keep-newest, or keep-largest)", s)
}

// BestDate returns the capture date when known, otherwise the mod time.
func (r *PhotoRecord) BestDate() time.Time {
	if !r.TakenAt.IsZero() {
		return r.TakenAt
	}
	return r.ModTime
}

package dedupe

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"photokeeper/internal/models"
)

// fingerprintHexLen is the truncated length of the structural fingerprint.
// Stored fingerprints depend on this exact length; changing it invalidates
// every catalog and regroups nothing with previous runs.
const fingerprintHexLen = 16

// fingerprintDelim joins the structural field tuple before hashing.
const fingerprintDelim = "|"

// Enricher decorates photo records with content hashes and structural
// fingerprints.
type Enricher struct{}

// NewEnricher creates a new Enricher.
func NewEnricher() *Enricher {
	return &Enricher{}
}

// Enrich computes missing hash fields for every record, in place and in
// order. A failed file read leaves both ContentHash and StructuralFP unset
// on that record and never aborts the batch.
func (e *Enricher) Enrich(records []*models.PhotoRecord) {
	for _, r := range records {
		if r.ContentHash == "" {
			hash, err := ComputeContentHash(r.Path)
			if err != nil {
				log.Debug().Str("path", r.Path).Err(err).Msg("content hash skipped")
				continue
			}
			r.ContentHash = hash
		}
		if r.StructuralFP == "" {
			r.StructuralFP = StructuralFingerprint(r)
		}
	}
}

// ComputeContentHash computes the SHA-256 of a file's full byte contents,
// encoded as lowercase hex.
func ComputeContentHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// StructuralFingerprint computes a cheap digest over a fixed tuple of
// metadata fields: width, height, taken-at (RFC 3339 UTC or empty),
// camera (or empty), file size. Returns "" when width or height is
// unknown, since there is nothing to fingerprint structurally.
func StructuralFingerprint(r *models.PhotoRecord) string {
	if r.Width <= 0 || r.Height <= 0 {
		return ""
	}

	takenAt := ""
	if !r.TakenAt.IsZero() {
		takenAt = r.TakenAt.UTC().Format(time.RFC3339)
	}

	joined := strings.Join([]string{
		strconv.Itoa(r.Width),
		strconv.Itoa(r.Height),
		takenAt,
		r.Camera,
		strconv.FormatInt(r.Size, 10),
	}, fingerprintDelim)

	sum := md5.Sum([]byte(joined))
	return hex.EncodeToString(sum[:])[:fingerprintHexLen]
}

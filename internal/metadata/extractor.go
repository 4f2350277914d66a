// Package metadata extracts file properties and EXIF fields from photos.
// Extracted records carry no hash fields; those are added later by the
// duplicate-detection enricher.
package metadata

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"photokeeper/internal/models"
)

// Extractor reads photo metadata from disk.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds a PhotoRecord for one file: file properties from stat,
// pixel dimensions from the image header, and taken-at plus camera
// identifier from EXIF when present. Missing EXIF or an undecodable
// header leaves the optional fields zero; only stat failures are errors.
func (e *Extractor) Extract(path string) (*models.PhotoRecord, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	record := &models.PhotoRecord{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    stat.Size(),
		ModTime: stat.ModTime(),
	}

	if width, height, err := decodeDimensions(path); err == nil {
		record.Width = width
		record.Height = height
	} else {
		log.Debug().Str("path", path).Err(err).Msg("no image dimensions")
	}

	if x, err := decodeExif(path); err == nil {
		if t, err := x.DateTime(); err == nil {
			record.TakenAt = t
		}
		record.Camera = cameraID(x)
	}

	return record, nil
}

// ExtractBatch extracts metadata for every path, collecting per-file
// failures without aborting the batch. Records keep input order.
func (e *Extractor) ExtractBatch(paths []string) ([]*models.PhotoRecord, []error) {
	var records []*models.PhotoRecord
	var errs []error

	for _, path := range paths {
		record, err := e.Extract(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		records = append(records, record)
	}

	return records, errs
}

// decodeDimensions reads the image header for pixel dimensions without
// decoding the full image.
func decodeDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

func decodeExif(path string) (*exif.Exif, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return exif.Decode(file)
}

// cameraID joins the EXIF make and model into one identifier, e.g.
// "Canon EOS R5". Either half may be absent.
func cameraID(x *exif.Exif) string {
	var parts []string
	for _, field := range []exif.FieldName{exif.Make, exif.Model} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		if val = strings.TrimSpace(val); val != "" {
			parts = append(parts, val)
		}
	}
	return strings.Join(parts, " ")
}

// IsSupportedPhoto checks if a file has a supported photo extension.
func IsSupportedPhoto(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff", ".tif":
		return true
	default:
		return false
	}
}

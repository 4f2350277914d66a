// Package scan walks photo libraries and extracts metadata in parallel.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"photokeeper/internal/metadata"
	"photokeeper/internal/models"
)

// Scanner finds photo files under a folder and extracts their metadata.
type Scanner struct {
	extractor  *metadata.Extractor
	workers    int
	progressFn func(scanned, total int, current string)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the number of parallel extraction workers.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithProgress sets a progress callback.
func WithProgress(fn func(scanned, total int, current string)) Option {
	return func(s *Scanner) {
		s.progressFn = fn
	}
}

// NewScanner creates a new Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		extractor: metadata.NewExtractor(),
		workers:   8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanFolder walks a folder recursively and returns a record per supported
// photo file. Hidden files and directories are skipped, as are files whose
// metadata cannot be read.
func (s *Scanner) ScanFolder(folder string) ([]*models.PhotoRecord, error) {
	var paths []string
	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if info.IsDir() {
			if path != folder && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if metadata.IsSupportedPhoto(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk folder: %w", err)
	}

	if len(paths) == 0 {
		return nil, nil
	}

	var (
		results   []*models.PhotoRecord
		resultsMu sync.Mutex
		wg        sync.WaitGroup
		scanned   int64
		total     = len(paths)
	)

	work := make(chan string, len(paths))
	for _, p := range paths {
		work <- p
	}
	close(work)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				record, err := s.extractor.Extract(path)
				if err != nil {
					log.Debug().Str("path", path).Err(err).Msg("extraction failed")
					atomic.AddInt64(&scanned, 1)
					continue
				}

				resultsMu.Lock()
				results = append(results, record)
				resultsMu.Unlock()

				n := atomic.AddInt64(&scanned, 1)
				if s.progressFn != nil {
					s.progressFn(int(n), total, path)
				}
			}
		}()
	}

	wg.Wait()

	return results, nil
}

// ScanFolders scans multiple folders and concatenates the results.
func (s *Scanner) ScanFolders(folders []string) ([]*models.PhotoRecord, error) {
	var all []*models.PhotoRecord
	for _, folder := range folders {
		results, err := s.ScanFolder(folder)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"photokeeper/internal/dedupe"
	"photokeeper/internal/scan"
	"photokeeper/internal/storage"
)

var scanWorkers int

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Catalog a folder of photos",
	Long: `Scan a folder recursively for photos and add them to the catalog.

The scan will:
1. Find all supported photos (jpg, png, gif, webp, etc.)
2. Extract file properties, dimensions, and EXIF metadata
3. Compute content hashes and structural fingerprints
4. Store the records in the catalog for later duplicate detection

Example:
  photokeeper scan ./photos
  photokeeper scan /mnt/library --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Parallel extraction workers (default from config)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	absFolder, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absFolder)
	if err != nil {
		return fmt.Errorf("folder not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absFolder)
	}

	workers := cfg.Workers
	if scanWorkers > 0 {
		workers = scanWorkers
	}

	fmt.Printf("Scanning: %s\n", absFolder)
	fmt.Printf("Workers:  %d\n\n", workers)

	store, err := storage.NewStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	lastLine := ""
	s := scan.NewScanner(
		scan.WithWorkers(workers),
		scan.WithProgress(func(scanned, total int, current string) {
			if lastLine != "" {
				fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
			}
			shortPath := current
			if len(shortPath) > 50 {
				shortPath = "..." + shortPath[len(shortPath)-47:]
			}
			lastLine = fmt.Sprintf("Progress: %d/%d  %s", scanned, total, shortPath)
			fmt.Print(lastLine)
		}),
	)

	records, err := s.ScanFolder(absFolder)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if lastLine != "" {
		fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
	}

	fmt.Printf("Extracted: %d photos\n", len(records))

	if len(records) == 0 {
		fmt.Println("No photos found.")
		return nil
	}

	fmt.Println("Computing hashes...")
	dedupe.NewEnricher().Enrich(records)

	if err := store.SavePhotos(records); err != nil {
		return fmt.Errorf("failed to save photos: %w", err)
	}

	store.RecordScan(absFolder, len(records), 0, 0)

	total, _ := store.CountPhotos()
	fmt.Println()
	fmt.Println("=== Scan Complete ===")
	fmt.Printf("Cataloged now:  %d\n", len(records))
	fmt.Printf("Catalog total:  %d\n", total)
	fmt.Println()
	fmt.Println("Run 'photokeeper dupes' to detect duplicates")

	return nil
}

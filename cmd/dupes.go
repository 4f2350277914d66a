package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"photokeeper/internal/dedupe"
	"photokeeper/internal/storage"
)

var dupesJSON bool

var dupesCmd = &cobra.Command{
	Use:   "dupes",
	Short: "Detect duplicate photos in the catalog",
	Long: `Detect duplicate photos across the catalog.

Detection runs two passes over the cataloged records:
1. Exact: photos whose full file contents are byte-identical
2. Structural: photos sharing dimensions, capture time, camera, and size

Exact matches take precedence; a photo never appears in both kinds of
group. Groups are reported largest first.

Example:
  photokeeper dupes
  photokeeper dupes --json > dupes.json`,
	RunE: runDupes,
}

func init() {
	dupesCmd.Flags().BoolVar(&dupesJSON, "json", false, "Output the detection result as JSON")
	rootCmd.AddCommand(dupesCmd)
}

func runDupes(cmd *cobra.Command, args []string) error {
	store, err := storage.NewStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	records, err := store.GetAllPhotos()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("Catalog is empty.")
		fmt.Println("Run 'photokeeper scan <folder>' first.")
		return nil
	}

	lastLine := ""
	detector := dedupe.NewDetector(
		dedupe.WithDetectProgress(func(done, total int, stage string) {
			if dupesJSON {
				return
			}
			if lastLine != "" {
				fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
			}
			lastLine = fmt.Sprintf("%s... %d/%d", stage, done, total)
			fmt.Print(lastLine)
		}),
	)

	result := detector.Detect(records)

	if lastLine != "" {
		fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
	}

	if dupesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Print(dedupe.GenerateReport(result))

	if len(result.Groups) > 0 {
		fmt.Println()
		fmt.Println("Run 'photokeeper clean --dry-run' to preview removal")
	}

	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photokeeper/internal/dedupe"
	"photokeeper/internal/storage"
)

var (
	listCamera  string
	listYear    int
	listMinSize int64
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged photos",
	Long: `Display cataloged photos, optionally filtered.

Example:
  photokeeper list                     # First 20 photos
  photokeeper list -n 0                # All photos
  photokeeper list --camera Canon      # Filter by camera
  photokeeper list --year 2025         # Filter by capture year`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCamera, "camera", "", "Filter by camera (substring match)")
	listCmd.Flags().IntVar(&listYear, "year", 0, "Filter by capture year")
	listCmd.Flags().Int64Var(&listMinSize, "min-size", 0, "Filter by minimum file size in bytes")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Limit number of photos shown (0 = all)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := storage.NewStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	records, err := store.SearchPhotos(storage.SearchFilter{
		Camera:  listCamera,
		Year:    listYear,
		MinSize: listMinSize,
		Limit:   listLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to search catalog: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No photos found.")
		fmt.Println("Run 'photokeeper scan <folder>' to catalog photos.")
		return nil
	}

	fmt.Printf("%-45s  %-10s  %-9s  %-10s  %s\n", "Path", "Size", "Pixels", "Taken", "Camera")
	fmt.Println(strings.Repeat("-", 90))

	for _, r := range records {
		taken := "-"
		if !r.TakenAt.IsZero() {
			taken = r.TakenAt.Format("2006-01-02")
		}
		pixels := "-"
		if r.Width > 0 && r.Height > 0 {
			pixels = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		fmt.Printf("%-45s  %-10s  %-9s  %-10s  %s\n",
			shortenPath(r.Path, 45), dedupe.FormatFileSize(r.Size), pixels, taken, r.Camera)
	}

	total, _ := store.CountPhotos()
	fmt.Println()
	fmt.Printf("Showing %d of %d cataloged photos\n", len(records), total)

	return nil
}

func shortenPath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-(maxLen-3):]
}

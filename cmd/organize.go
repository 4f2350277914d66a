package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"photokeeper/internal/organize"
	"photokeeper/internal/scan"
)

var (
	organizePattern string
	organizeExecute bool
	organizeTo      string
)

var organizeCmd = &cobra.Command{
	Use:   "organize <folder>",
	Short: "Relocate photos into a pattern-defined layout",
	Long: `Move photos from a folder into a date-based directory layout under the
library root.

The destination is rendered from a pattern with these tokens:
  {year}   capture year  (e.g. 2025)
  {month}  capture month (e.g. 06)
  {day}    capture day   (e.g. 19)
  {camera} camera make and model, or "unknown"

The capture date comes from EXIF when available, otherwise the file's
modification time. Name collisions get a numeric suffix.

The default is a preview; pass -x to actually move files.

Example:
  photokeeper organize ./Incoming
  photokeeper organize ./Incoming -x
  photokeeper organize ./Incoming --pattern "{camera}/{year}" -x`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().StringVar(&organizePattern, "pattern", "", "Layout pattern (default from config)")
	organizeCmd.Flags().StringVar(&organizeTo, "to", "", "Library root to organize into (default from config)")
	organizeCmd.Flags().BoolVarP(&organizeExecute, "execute", "x", false, "Actually move files (default is preview)")
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	absFolder, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	root := cfg.LibraryRoot
	if organizeTo != "" {
		root = organizeTo
	}
	if root == "" {
		root = absFolder
	}

	pattern := cfg.OrganizePattern
	if organizePattern != "" {
		pattern = organizePattern
	}

	fmt.Printf("Organizing: %s\n", absFolder)
	fmt.Printf("Into:       %s\n", root)
	fmt.Printf("Pattern:    %s\n\n", pattern)

	if !organizeExecute {
		fmt.Println("[preview - use -x to actually move files]")
		fmt.Println()
	}

	records, err := scan.NewScanner(scan.WithWorkers(cfg.Workers)).ScanFolder(absFolder)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No photos found.")
		return nil
	}

	o := organize.NewOrganizer(root, pattern)
	result := o.Organize(records, !organizeExecute)

	for _, m := range result.Moves {
		fmt.Printf("  %s\n", m.Source)
		fmt.Printf("    -> %s\n", m.Target)
	}

	fmt.Println()
	if organizeExecute {
		fmt.Printf("Moved %d files\n", len(result.Moves))
	} else {
		fmt.Printf("Would move %d files\n", len(result.Moves))
	}
	if len(result.Errors) > 0 {
		fmt.Printf("Failed: %d files\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
	}

	return nil
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"photokeeper/internal/dedupe"
	"photokeeper/internal/models"
	"photokeeper/internal/storage"
)

var (
	cleanStrategy  string
	cleanDryRun    bool
	cleanPermanent bool
	cleanNoConfirm bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove duplicate photos",
	Long: `Detect duplicate photos and remove the redundant copies, keeping one
survivor per group according to the retention strategy.

Strategies:
  keep-first    Keep the first photo in each group
  keep-newest   Keep the most recently modified photo
  keep-largest  Keep the largest photo

Options:
  --dry-run     Preview what would be removed without removing anything
  --permanent   Delete files permanently instead of moving to trash
  --yes         Skip confirmation prompt

Example:
  photokeeper clean --dry-run
  photokeeper clean --strategy keep-largest
  photokeeper clean --permanent --yes`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanStrategy, "strategy", "", "Retention strategy (default from config)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview without removing")
	cleanCmd.Flags().BoolVar(&cleanPermanent, "permanent", false, "Delete permanently instead of moving to trash")
	cleanCmd.Flags().BoolVarP(&cleanNoConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	strategyName := cfg.RetentionStrategy
	if cleanStrategy != "" {
		strategyName = cleanStrategy
	}
	strategy, err := models.ParseRetentionStrategy(strategyName)
	if err != nil {
		return err
	}

	store, err := storage.NewStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer store.Close()

	records, err := store.GetAllPhotos()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	result := dedupe.NewDetector().Detect(records)
	if len(result.Groups) == 0 {
		fmt.Println("No duplicate groups found.")
		return nil
	}

	fmt.Printf("Found %d duplicate groups (%d duplicates, %s estimated)\n",
		len(result.Groups), result.TotalDuplicates, dedupe.FormatFileSize(result.TotalWastedSpace))
	fmt.Printf("Strategy: %s\n\n", strategy)

	if !cleanDryRun && !cleanNoConfirm {
		action := "move to trash"
		if cleanPermanent {
			action = "permanently delete"
		}
		fmt.Printf("Are you sure you want to %s %d files? [y/N]: ", action, result.TotalDuplicates)
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	lastLine := ""
	remover := dedupe.NewRemover(strategy,
		dedupe.WithDryRun(cleanDryRun),
		dedupe.WithTrash(cfg.UseTrash && !cleanPermanent),
		dedupe.WithRemoveProgress(func(done, total int, current string) {
			if lastLine != "" {
				fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
			}
			lastLine = fmt.Sprintf("Removing: %d/%d  %s", done, total, current)
			fmt.Print(lastLine)
		}),
	)

	outcome := remover.Remove(result.Groups)

	if lastLine != "" {
		fmt.Print("\r" + strings.Repeat(" ", len(lastLine)) + "\r")
	}

	if cleanDryRun {
		fmt.Println("Files that would be removed:")
		for _, path := range outcome.Removed {
			fmt.Printf("  %s\n", path)
		}
		fmt.Println()
		fmt.Printf("Would reclaim: %s\n", dedupe.FormatFileSize(outcome.SavedSpace))
		fmt.Println("(Dry run - no files were modified)")
		return nil
	}

	// Drop removed files from the catalog so re-detection stays honest.
	for _, path := range outcome.Removed {
		store.DeletePhoto(path)
	}

	fmt.Printf("Removed %d files\n", len(outcome.Removed))
	fmt.Printf("Space reclaimed: %s\n", dedupe.FormatFileSize(outcome.SavedSpace))
	if len(outcome.Errors) > 0 {
		fmt.Printf("Failed: %d files\n", len(outcome.Errors))
		for _, e := range outcome.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
	}

	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"photokeeper/internal/config"
	"photokeeper/internal/logging"
)

var (
	cfgPath string
	dbPath  string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "photokeeper",
	Short: "Catalog photos, find duplicates, and organize your library",
	Long: `photokeeper catalogs photo files by extracting EXIF and file metadata
into a local SQLite catalog, detects exact and structurally-similar
duplicates, removes redundant copies safely, and organizes photos into a
date-based folder layout.

Example usage:
  photokeeper scan ./photos            # Catalog a folder
  photokeeper dupes                    # Detect duplicates in the catalog
  photokeeper clean --dry-run          # Preview duplicate removal
  photokeeper organize ./photos        # Preview pattern-based relocation`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}
		logging.Init(verbose || cfg.Verbose)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultCfg, _ := config.DefaultPath()

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite catalog (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

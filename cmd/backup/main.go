package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"screenguess/internal/config"
	"screenguess/internal/database"
	"screenguess/internal/logging"
	"screenguess/internal/repository"
	"screenguess/internal/security"
	"screenguess/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:          "backup",
		Short:        "ScreenGuess database maintenance tool",
		SilenceUsage: true,
		Long: `Export, import and repair ScreenGuess data.

Environment variables:
  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)
  DB_PATH          SQLite database path (default: ./screenguess.db)
  DATABASE_URL     PostgreSQL or MySQL connection URL`,
	}

	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newRemapCmd())
	root.AddCommand(newHashAdminKeyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase loads config, opens the database and brings the schema up to date
func openDatabase() (*config.Config, *database.DB, *zap.Logger, error) {
	cfg := config.Load()

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Debug: cfg.Debug})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.InitializeWithConfig(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return cfg, db, logger, nil
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export database to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, logger, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logger.Sync()

			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			logger.Info("Exporting database", zap.String("path", output))
			if err := service.NewBackupService(db, logger).Export(output); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if info, err := os.Stat(output); err == nil {
				logger.Info("Export complete", zap.Float64("size_mb", float64(info.Size())/1024/1024))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		input     string
		clearData bool
		assumeYes bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import database from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(input); os.IsNotExist(err) {
				return fmt.Errorf("input file does not exist: %s", input)
			}

			_, db, logger, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logger.Sync()

			backupService := service.NewBackupService(db, logger)

			if clearData {
				if !assumeYes && !confirm(cmd, "WARNING: This will delete all player data. Type 'yes' to confirm: ") {
					logger.Info("Import cancelled")
					return nil
				}
				logger.Info("Clearing existing data")
				if err := backupService.Clear(); err != nil {
					return fmt.Errorf("failed to clear database: %w", err)
				}
			}

			logger.Info("Importing database", zap.String("path", input))
			if err := backupService.Import(input); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file path")
	cmd.Flags().BoolVar(&clearData, "clear", false, "clear existing player data before import (destructive)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newRemapCmd() *cobra.Command {
	var oldPinned int
	cmd := &cobra.Command{
		Use:   "remap-progress",
		Short: "Move standard-mode progress onto the current level order",
		Long: `Recompute the standard-mode order with a previous pinned-tier size and
move every player's saved results onto the order produced by the current
STANDARD_PINNED_LEVELS. Results follow their game, not their level number.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if oldPinned < 0 {
				return fmt.Errorf("--old-pinned must not be negative")
			}

			cfg, db, logger, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()
			defer logger.Sync()

			catalog := service.NewCatalogService(repository.NewGameRepository(db), logger)
			if err := catalog.Reload(); err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			levels := service.NewLevelService(catalog,
				repository.NewProgressRepository(db),
				repository.NewSettingsRepository(db),
				cfg.StandardPinnedLevels, cfg.StandardSeed, logger)

			players, err := levels.RemapProgress(oldPinned)
			if err != nil {
				return err
			}
			logger.Info("Remap complete",
				zap.Int("old_pinned", oldPinned),
				zap.Int("new_pinned", cfg.StandardPinnedLevels),
				zap.Int("players", players))
			return nil
		},
	}
	cmd.Flags().IntVar(&oldPinned, "old-pinned", 0, "pinned-tier size the saved progress was recorded under")
	_ = cmd.MarkFlagRequired("old-pinned")
	return cmd
}

func newHashAdminKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-admin-key <key>",
		Short: "Print the bcrypt hash to use as ADMIN_KEY_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := security.HashAdminKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}

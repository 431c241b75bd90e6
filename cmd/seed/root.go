package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lessonstore/internal/commons"
	"lessonstore/internal/config"
	"lessonstore/internal/infrastructure/logger"
	"lessonstore/internal/infrastructure/store"
	"lessonstore/internal/lesson"
)

var (
	seedFile   string
	configFile string
	force      bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load lessons into the store",
	Long: `seed reads a YAML list of lessons and inserts them into the configured store.
Lessons are only inserted into an empty catalog unless --force is given; existing
lessons are never removed.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds/lessons.yaml", "YAML file with the lessons to insert")
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML config file (default: read the environment)")
	rootCmd.Flags().BoolVar(&force, "force", false, "insert even when the catalog already has lessons")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer zapLogger.Sync()

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	lessons, err := parseSeedFile(data)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(ctx, cfg, zapLogger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close(context.Background())

	inserted, err := seedLessons(ctx, lesson.NewRepository(st), lessons, force, zapLogger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d lessons\n", inserted)
	return nil
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return commons.LoadConfig(configFile)
	}
	return config.Load()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/config"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/docstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/project"
)

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "estudio",
	Short:         "Organize folders, articles and image galleries into a local writing project",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		setupLogger()
		return nil
	},
}

// Execute runs the root command until completion or SIGINT/SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "estudio: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "estudio.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogger() {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	} else if cfg != nil {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

// openService wires the stores and loads the persisted project.
func openService(cmd *cobra.Command) (*project.Service, error) {
	docs := docstore.New(cfg.DocumentPath(), cfg.MaxDocumentBytes)
	blobs, err := blobstore.Open(cfg.BlobDir())
	if err != nil {
		return nil, err
	}
	svc := project.NewService(docs, blobs)
	if err := svc.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}

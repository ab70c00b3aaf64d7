package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"govtrader/internal/app"
	"govtrader/internal/config"
	"govtrader/internal/logger"
	"govtrader/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:   "govtrader",
		Short: "Governance-proposal futures trading bot",
		Long: "govtrader watches protocol governance feeds, scores each new proposal " +
			"with a local classifier plus hosted reasoning services, and opens " +
			"leveraged futures positions when sentiment is strong enough.",
		SilenceUsage: true,
	}
	root.AddCommand(runCmd(), initCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the scan loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logFile, err := setupLogOutput(cfg.App.LogPath)
			if err != nil {
				log.Fatalf("log file init failed: %v", err)
			}
			if logFile != nil {
				defer logFile.Close()
			}
			reasoningFile, err := setupReasoningLog(cfg.App.ReasoningLog)
			if err != nil {
				log.Fatalf("reasoning log init failed: %v", err)
			}
			if reasoningFile != nil {
				defer reasoningFile.Close()
			}
			logger.SetLevel(cfg.App.LogLevel)

			a, err := app.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the data directory with empty state files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
				return err
			}
			if err := store.NewLiveStore(cfg.App.DataDir).Init(); err != nil {
				return err
			}
			if err := store.NewHistoryStore(cfg.App.DataDir).Init(); err != nil {
				return err
			}
			if err := store.NewPriceCheckStore(cfg.App.DataDir).Init(); err != nil {
				return err
			}
			if _, err := store.OpenAnalytics(cfg.App.DataDir); err != nil {
				return err
			}
			cmd.Printf("data directory ready at %s\n", cfg.App.DataDir)
			return nil
		},
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}

func setupReasoningLog(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	logger.SetReasoningWriter(f)
	return f, nil
}

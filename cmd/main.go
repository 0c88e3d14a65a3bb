// Package main provides the CLI entrypoint for the essay bot.
// It wires subcommands (run, verify), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"essaybot/internal/config"
	"essaybot/pkg/github"
	"essaybot/pkg/github/ghapi"
	"essaybot/pkg/logger"
)

// getGitHub creates a GitHub contents client from configuration values.
func getGitHub(ctx context.Context, cfg *config.Config) github.Client {
	if cfg.GitHub.Token == "" {
		logger.Fatal(ctx, "github token is not configured, set GITHUB_TOKEN")
	}

	return ghapi.New(&http.Client{Timeout: cfg.GitHub.RequestTimeout}, ghapi.Options{
		BaseURL: cfg.GitHub.APIBase,
		Token:   cfg.GitHub.Token,
		Owner:   cfg.GitHub.Owner,
	})
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "essaybot",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		runCommand(cfg),
		verifyCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

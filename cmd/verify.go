package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"essaybot/internal/config"
	"essaybot/pkg/logger"
)

// verifyCommand constructs the 'verify' subcommand that checks the configured
// GitHub token and prints the authenticated login.
func verifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verifies the GitHub token and prints the authenticated user",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			gh := getGitHub(ctx, cfg)

			login, err := gh.VerifyToken(ctx)
			if err != nil {
				logger.Fatal(ctx, "could not verify github token", zap.Error(err))
			}

			fmt.Println("authenticated as:", login)                                               //nolint: forbidigo
			fmt.Printf("content repo: %s/%s\n", cfg.GitHub.Owner, cfg.GitHub.ContentRepo)         //nolint: forbidigo
			fmt.Printf("image repo: %s/%s\n", cfg.GitHub.Owner, cfg.Images.Repo)                  //nolint: forbidigo
			fmt.Printf("allowed telegram users: %d configured\n", len(cfg.Telegram.AllowedUsers)) //nolint: forbidigo
		},
	}

	return cmd
}

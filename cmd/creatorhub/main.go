package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/creatorhub/creatorhub/internal/interfaces/cli/bootstrap"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/migrate"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/policy"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/server"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/token"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/worker"
)

// @title CreatorHub API
// @version 1.0
// @description Plan entitlements, token metering and generation features for creators.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	opts := &bootstrap.Options{}
	rootCmd := &cobra.Command{
		Use:          "creatorhub",
		Short:        "CreatorHub - plan entitlements and token metering for creator tools",
		SilenceUsage: true,
	}
	opts.BindFlags(rootCmd)

	rootCmd.AddCommand(
		server.NewCommand(opts),
		worker.NewCommand(opts),
		migrate.NewCommand(opts),
		policy.NewCommand(opts),
		token.NewCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
